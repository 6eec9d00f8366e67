package employee_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/employee/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/storage/storagetest"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		calculator := salary.NewCalculator(salary.DefaultRates(), quietLogger())
		service := employee.NewService(kvstore.NewEmployeeRepository(storagetest.NewMemoryKV()), calculator, &mockRecorder{}, 22, quietLogger())
		handler := employee.NewHandler(&transport.BaseHandler{Logger: quietLogger()}, service)

		company := &user.User{ID: "c-1", Username: "acme", Role: user.RoleCompany}
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), company)))
			})
		})
		router.Get("/employees", handler.ListEmployees)
		router.Post("/employees", handler.CreateEmployee)
		router.Put("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
		router.Post("/employees/{id}/calculate", handler.CalculateEmployee)
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	create := func() employee.Employee {
		rec := send(http.MethodPost, "/employees", `{"name":"Jane","surname":"Doe","dailyEarnings":100,"workingDays":20}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var emp employee.Employee
		Expect(json.Unmarshal(rec.Body.Bytes(), &emp)).To(Succeed())
		return emp
	}

	It("should create and list employees", func() {
		emp := create()
		Expect(emp.GrossSalary.String()).To(Equal("2000"))

		rec := send(http.MethodGet, "/employees", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var employees []employee.Employee
		Expect(json.Unmarshal(rec.Body.Bytes(), &employees)).To(Succeed())
		Expect(employees).To(HaveLen(1))
	})

	It("should answer 400 when salary information is missing", func() {
		rec := send(http.MethodPost, "/employees", `{"name":"Jane","surname":"Doe"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should update an employee", func() {
		emp := create()

		rec := send(http.MethodPut, "/employees/"+emp.ID, `{"name":"Jane","surname":"Roe","grossSalary":5000}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"surname":"Roe"`))
	})

	It("should answer 404 for an unknown employee", func() {
		Expect(send(http.MethodDelete, "/employees/missing", "").Code).To(Equal(http.StatusNotFound))
		Expect(send(http.MethodPost, "/employees/missing/calculate", "").Code).To(Equal(http.StatusNotFound))
	})

	It("should calculate and optionally save", func() {
		emp := create()

		rec := send(http.MethodPost, "/employees/"+emp.ID+"/calculate", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"netSalary":1500`))

		rec = send(http.MethodPost, "/employees/"+emp.ID+"/calculate", `{"save":true}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(ContainSubstring(`"history"`))
	})

	It("should delete an employee", func() {
		emp := create()
		Expect(send(http.MethodDelete, "/employees/"+emp.ID, "").Code).To(Equal(http.StatusNoContent))
	})
})
