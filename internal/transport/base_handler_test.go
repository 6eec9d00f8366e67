package transport_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

var _ = Describe("BaseHandler", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("should map app errors to their status", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, internal.ErrEmployeeNotFound)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(MatchJSON(`{"error":{"type":"NOT_FOUND","code":"EMPLOYEE_NOT_FOUND","message":"Employee not found"}}`))
	})

	It("should hide the cause of internal errors", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, internal.NewInternalError("Failed to save employee", errors.New("disk full")))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("disk full"))
	})

	It("should treat unknown errors as internal", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, errors.New("raw"))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("raw"))
	})

	Describe("DecodeJSON", func() {
		type form struct {
			Name string `json:"name"`
		}

		It("should accept an empty body", func() {
			var f form
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
			Expect(h.DecodeJSON(req, &f)).To(Succeed())
		})

		It("should reject unknown fields", func() {
			var f form
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"x"}`))
			err := h.DecodeJSON(req, &f)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})
})
