package test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGenesis(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Genesis Pool Suite")
}
