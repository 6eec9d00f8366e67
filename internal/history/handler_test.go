package history_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/history"
	"github.com/frahmantamala/salary-calculator/internal/history/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/storage/storagetest"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("History Handler", func() {
	var (
		service *history.Service
		router  *chi.Mux
	)

	asUser := func(userID string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUserID(r.Context(), userID)))
			})
		}
	}

	BeforeEach(func() {
		calculator := salary.NewCalculator(salary.DefaultRates(), quietLogger())
		service = history.NewService(kvstore.NewHistoryRepository(storagetest.NewMemoryKV()), calculator, quietLogger())
		handler := history.NewHandler(&transport.BaseHandler{Logger: quietLogger()}, service)

		router = chi.NewRouter()
		router.Use(asUser("u-1"))
		router.Post("/calculations/save", handler.SaveCalculation)
		router.Get("/history", handler.ListHistory)
		router.Get("/history/export", handler.ExportHistory)
		router.Delete("/history/{id}", handler.DeleteHistory)
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("should save a calculation and list it", func() {
		rec := send(http.MethodPost, "/calculations/save",
			`{"inputType":"gross","grossSalary":1000,"deductionRates":{"tax":20,"retirement":0,"insurance":0}}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = send(http.MethodGet, "/history", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var entries []history.Entry
		Expect(json.Unmarshal(rec.Body.Bytes(), &entries)).To(Succeed())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].UserID).To(Equal("u-1"))
		Expect(entries[0].Calculation.NetSalary.String()).To(Equal("800"))
	})

	It("should answer 400 for a non-positive salary", func() {
		rec := send(http.MethodPost, "/calculations/save", `{"inputType":"gross","grossSalary":0}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("Please enter valid salary information"))
	})

	It("should answer 404 when deleting an unknown entry", func() {
		rec := send(http.MethodDelete, "/history/missing", "")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should delete an owned entry", func() {
		calc := salary.Calculate(salary.DefaultRates().Tax, salary.DefaultRates())
		entry, err := service.Record(context.Background(), "u-1", calc, salary.DefaultRates(), nil)
		Expect(err).NotTo(HaveOccurred())

		rec := send(http.MethodDelete, "/history/"+entry.ID, "")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
	})

	It("should serve the export as an attachment", func() {
		rec := send(http.MethodGet, "/history/export", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal(history.ExportContentType))
		Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("salary-history.xlsx"))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})
})
