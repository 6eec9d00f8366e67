package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/storage/storagetest"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		service *auth.Service
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = newService(storagetest.NewMemoryKV())
		handler := auth.NewHandler(service)
		roles := auth.NewRoleAuthorization(quietLogger())

		router = chi.NewRouter()
		router.Post("/auth/register", handler.Register)
		router.Post("/auth/login", handler.Login)
		router.Post("/auth/logout", handler.Logout)
		router.Group(func(r chi.Router) {
			r.Use(handler.SessionMiddleware)
			r.Get("/users/me", handler.Me)
			r.With(roles.RequireCompany()).Get("/employees", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Error.Code
	}

	It("should register and expose the signed-in user", func() {
		rec := send(http.MethodPost, "/auth/register",
			`{"username":"acme","password":"pass1","name":"Acme","surname":"Corp","role":"company"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var created user.User
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(rec.Body.String()).NotTo(ContainSubstring("password"))

		rec = send(http.MethodGet, "/users/me", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var me user.User
		Expect(json.Unmarshal(rec.Body.Bytes(), &me)).To(Succeed())
		Expect(me.ID).To(Equal(created.ID))
	})

	It("should answer 409 for a taken username", func() {
		body := `{"username":"acme","password":"pass1","name":"Acme","surname":"Corp"}`
		Expect(send(http.MethodPost, "/auth/register", body).Code).To(Equal(http.StatusCreated))

		rec := send(http.MethodPost, "/auth/register", body)
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(rec)).To(Equal("USERNAME_TAKEN"))
	})

	It("should answer 400 for malformed JSON", func() {
		rec := send(http.MethodPost, "/auth/login", `{"username":`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 401 for bad credentials", func() {
		rec := send(http.MethodPost, "/auth/login", `{"username":"ghost","password":"boo1"}`)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(rec)).To(Equal("INVALID_CREDENTIALS"))
	})

	It("should reject session routes after logout", func() {
		_, err := service.Register(context.Background(), auth.RegisterDTO{
			Username: "jane", Password: "pass1", Name: "Jane", Surname: "Doe",
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(send(http.MethodPost, "/auth/logout", "").Code).To(Equal(http.StatusNoContent))

		rec := send(http.MethodGet, "/users/me", "")
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(rec)).To(Equal("NOT_AUTHENTICATED"))
	})

	It("should keep individual accounts away from company routes", func() {
		_, err := service.Register(context.Background(), auth.RegisterDTO{
			Username: "jane", Password: "pass1", Name: "Jane", Surname: "Doe", Role: user.RoleIndividual,
		})
		Expect(err).NotTo(HaveOccurred())

		rec := send(http.MethodGet, "/employees", "")
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(errorCode(rec)).To(Equal("COMPANY_ROLE_REQUIRED"))
	})

	It("should admit company accounts to company routes", func() {
		_, err := service.Register(context.Background(), auth.RegisterDTO{
			Username: "acme", Password: "pass1", Name: "Acme", Surname: "Corp", Role: user.RoleCompany,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(send(http.MethodGet, "/employees", "").Code).To(Equal(http.StatusOK))
	})
})
