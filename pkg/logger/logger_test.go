package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/frahmantamala/salary-calculator/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should write JSON records when format is json", func() {
		logger.InitWithWriter(buf, "info", "json")
		logger.LoggerWrapper().Info("saved", "count", 2)

		var record map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
		Expect(record["msg"]).To(Equal("saved"))
		Expect(record["count"]).To(BeNumerically("==", 2))
	})

	It("should drop records below the configured level", func() {
		logger.InitWithWriter(buf, "error", "text")
		logger.LoggerWrapper().Info("hidden")
		Expect(buf.Len()).To(BeZero())
	})

	It("should carry fields through the context", func() {
		logger.InitWithWriter(buf, "debug", "text")
		ctx := logger.With(context.Background(), "user_id", "u-1")
		logger.From(ctx).Debug("session restored")
		Expect(buf.String()).To(ContainSubstring("user_id=u-1"))
	})

	It("should fall back to the default logger when the context is empty", func() {
		logger.InitWithWriter(buf, "info", "text")
		Expect(logger.From(context.Background())).To(BeIdenticalTo(logger.LoggerWrapper()))
	})
})
