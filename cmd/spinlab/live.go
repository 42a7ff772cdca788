package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/viz"
)

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "watch the lattice evolve in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return viz.Run(viz.Options{
				Size:         cfg.Size,
				Temperature:  cfg.Temperature,
				Seed:         cfg.Seed,
				StepsPerTick: stepsPerFrame,
				Theme:        theme,
			})
		},
	}
	latticeFlags(cmd)
	cmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", viz.DefaultStepsPerTick, "Metropolis trials per frame")
	cmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")
	return cmd
}
