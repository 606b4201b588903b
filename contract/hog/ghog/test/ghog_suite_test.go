package test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGHog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "GHog Pool Suite")
}
