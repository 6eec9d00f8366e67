package rest_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	employeeStore "github.com/frahmantamala/salary-calculator/internal/employee/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/history"
	historyStore "github.com/frahmantamala/salary-calculator/internal/history/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/storage/storagetest"
	"github.com/frahmantamala/salary-calculator/internal/theme"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	"github.com/frahmantamala/salary-calculator/internal/transport/rest"
	userStore "github.com/frahmantamala/salary-calculator/internal/user/kvstore"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Router Suite")
}

var _ = Describe("API routes", func() {
	var (
		kv     *storagetest.MemoryKV
		router *chi.Mux
	)

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		base := transport.NewBaseHandler(lg)
		kv = storagetest.NewMemoryKV()

		users := userStore.NewUserRepository(kv)
		authService := auth.NewService(users, users, lg)
		calculator := salary.NewCalculator(salary.DefaultRates(), lg)
		historyService := history.NewService(historyStore.NewHistoryRepository(kv), calculator, lg)
		employeeService := employee.NewService(employeeStore.NewEmployeeRepository(kv), calculator, historyService, 22, lg)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:      rest.NewHealthHandler(base, kv, "store"),
			Auth:        auth.NewHandler(authService),
			Roles:       auth.NewRoleAuthorization(lg),
			Calculation: salary.NewHandler(base, calculator),
			History:     history.NewHandler(base, historyService),
			Employee:    employee.NewHandler(base, employeeService),
			Theme:       theme.NewHandler(base, theme.NewService(kv, lg)),
		}, lg)
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("should report liveness and store health", func() {
		Expect(send(http.MethodGet, "/ping", "").Code).To(Equal(http.StatusOK))

		rec := send(http.MethodGet, "/health", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"store"`))

		kv.SetShouldFail(true, errors.New("gone"))
		Expect(send(http.MethodGet, "/health", "").Code).To(Equal(http.StatusServiceUnavailable))
	})

	It("should require a session for calculations", func() {
		rec := send(http.MethodPost, "/calculations", `{"grossSalary":1000}`)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should carry a company through employees and history", func() {
		rec := send(http.MethodPost, "/auth/register",
			`{"username":"acme","password":"pass1","name":"Acme","surname":"Corp","role":"company"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = send(http.MethodPost, "/employees", `{"name":"Jane","surname":"Doe","grossSalary":1000}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var emp employee.Employee
		Expect(json.Unmarshal(rec.Body.Bytes(), &emp)).To(Succeed())

		rec = send(http.MethodPost, "/employees/"+emp.ID+"/calculate", `{"save":true}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = send(http.MethodPost, "/calculations/save", `{"inputType":"gross","grossSalary":2000}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = send(http.MethodGet, "/history", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var entries []history.Entry
		Expect(json.Unmarshal(rec.Body.Bytes(), &entries)).To(Succeed())
		Expect(entries).To(HaveLen(2))
		Expect(entries[1].Title()).To(Equal("Jane Doe"))

		Expect(send(http.MethodGet, "/history/export", "").Code).To(Equal(http.StatusOK))
	})

	It("should keep individuals out of employees", func() {
		Expect(send(http.MethodPost, "/auth/register",
			`{"username":"jane","password":"pass1","name":"Jane","surname":"Doe"}`).Code).To(Equal(http.StatusCreated))

		Expect(send(http.MethodGet, "/employees", "").Code).To(Equal(http.StatusForbidden))
		Expect(send(http.MethodGet, "/users/me", "").Code).To(Equal(http.StatusOK))
	})

	It("should serve the OpenAPI document and Swagger UI", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yml", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("/calculations/defaults"))

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("/openapi.yml"))
	})

	It("should serve the theme without a session", func() {
		rec := send(http.MethodPost, "/theme/toggle", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"theme":"dark"}`))
	})
})
