package ising

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

//go:generate mockgen -destination "mock_source_test.go" -package $GOPACKAGE -write_package_comment=false github.com/san-kum/spinlab/internal/ising Source

func TestIsing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ising Suite")
}
