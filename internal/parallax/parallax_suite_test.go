package parallax_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestParallax(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Parallax Suite")
}
