package salary_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Calculation Handler", func() {
	var handler *salary.Handler

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler = salary.NewHandler(&transport.BaseHandler{Logger: lg}, salary.NewCalculator(salary.DefaultRates(), lg))
	})

	calculate := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.Calculate(rec, httptest.NewRequest(http.MethodPost, "/calculations", strings.NewReader(body)))
		return rec
	}

	It("should return the breakdown with formatted amounts", func() {
		rec := calculate(`{"inputType":"gross","grossSalary":1234.5}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		body := rec.Body.String()
		Expect(body).To(ContainSubstring(`"grossSalary":"$1,234.50"`))
		Expect(body).To(ContainSubstring(`"tax":10`))
	})

	It("should derive gross from daily earnings", func() {
		rec := calculate(`{"inputType":"daily","dailyEarnings":50,"workingDays":22}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"grossSalary":1100`))
	})

	It("should answer 400 for zero working days", func() {
		rec := calculate(`{"inputType":"daily","dailyEarnings":50,"workingDays":0}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 400 for an unknown input type", func() {
		rec := calculate(`{"inputType":"hourly","grossSalary":10}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("INVALID_INPUT_TYPE"))
	})

	It("should report the default rates", func() {
		rec := httptest.NewRecorder()
		handler.DefaultRates(rec, httptest.NewRequest(http.MethodGet, "/calculations/defaults", nil))
		Expect(rec.Body.String()).To(MatchJSON(`{"tax":10,"retirement":10,"insurance":5}`))
	})
})
