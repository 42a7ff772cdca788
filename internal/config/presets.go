package config

import "sort"

var Presets = map[string]*Config{
	"iron": {
		Size: 20, Temperature: 1043, Steps: 1000, SampleEvery: 100,
	},
	"cold": {
		Size: 32, Temperature: 100, Steps: 500000, SampleEvery: 5000,
	},
	"critical": {
		Size: 48, Temperature: 1043, Steps: 2000000, SampleEvery: 10000,
	},
	"hot": {
		Size: 32, Temperature: 5000, Steps: 200000, SampleEvery: 2000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
