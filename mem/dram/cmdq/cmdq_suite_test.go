package cmdq_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCmdq(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmdq Suite")
}
