package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/hrconsole/api"
	"github.com/frahmantamala/hrconsole/internal/activity"
	"github.com/frahmantamala/hrconsole/internal/console"
	activityDatamodel "github.com/frahmantamala/hrconsole/internal/core/datamodel/activity"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/frahmantamala/hrconsole/internal/storage/memory"
	"github.com/frahmantamala/hrconsole/internal/store"
	"github.com/frahmantamala/hrconsole/internal/transport"
	"github.com/frahmantamala/hrconsole/internal/transport/rest"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Suite")
}

type emptyActivity struct{}

func (emptyActivity) Create(context.Context, *activityDatamodel.Entry) error { return nil }
func (emptyActivity) List(context.Context, int) ([]*activityDatamodel.Entry, error) {
	return nil, nil
}

var _ = Describe("Health", func() {
	get := func(h *rest.HealthHandler, path string) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Routes{Health: h, Logger: logger.Discard()})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("answers ping", func() {
		w := get(rest.NewHealthHandler(), "/api/v1/ping")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"OK"`))
	})

	It("reports every component", func() {
		h := rest.NewHealthHandler(
			rest.Check{Name: "database", Pinger: rest.PingFunc(func(context.Context) error { return nil })},
			rest.Check{Name: "redis", Pinger: rest.PingFunc(func(context.Context) error { return nil })},
		)
		w := get(h, "/api/v1/health")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("database"))
		Expect(resp.Components).To(HaveKey("redis"))
	})

	It("answers 503 when a component is down", func() {
		h := rest.NewHealthHandler(
			rest.Check{Name: "database", Pinger: rest.PingFunc(func(context.Context) error { return errors.New("connection refused") })},
		)
		w := get(h, "/api/v1/health")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Components["database"].Message).To(Equal("connection refused"))
	})
})

var _ = Describe("RegisterAllRoutes", func() {
	var (
		router *chi.Mux
		c      *console.Console
	)

	BeforeEach(func() {
		ctx := context.Background()
		st := store.New(memory.New(), "", 0, logger.Discard())
		repo := repository.New(document.Default(), st, nil, logger.Discard())
		_, err := repo.CreateAccount(ctx, repository.AccountFields{
			FirstName: "Ada", Email: "admin@example.com", Role: document.RoleAdmin, Password: "admin",
		})
		Expect(err).NotTo(HaveOccurred())

		c = console.New(repo, nil, logger.Discard())
		base := transport.NewBaseHandler(logger.Discard())
		activityService := activity.NewService(emptyActivity{}, 50, logger.Discard())

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Routes{
			Console:     console.NewHandler(base, c),
			Activity:    activity.NewHandler(base, activityService),
			CurrentUser: c.CurrentUserID,
			MetricsPath: "/metrics",
			Logger:      logger.Discard(),
		})
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("keeps the activity log behind the login", func() {
		Expect(serve(http.MethodGet, "/api/v1/activity", "").Code).To(Equal(http.StatusUnauthorized))

		w := serve(http.MethodPost, "/api/v1/auth/login", `{"email":"admin@example.com","password":"admin"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		Expect(serve(http.MethodGet, "/api/v1/activity", "").Code).To(Equal(http.StatusOK))
	})

	It("serves the OpenAPI document, swagger and metrics", func() {
		Expect(serve(http.MethodGet, "/openapi.yml", "").Code).To(Equal(http.StatusOK))
		Expect(serve(http.MethodGet, "/metrics", "").Code).To(Equal(http.StatusOK))
	})

	It("answers unknown routes with a JSON 404", func() {
		w := serve(http.MethodGet, "/nowhere", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
	})

	It("sets a trace id on every response", func() {
		w := serve(http.MethodGet, "/api/v1/ping", "")
		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("documents every API route", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		var missing []string
		err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, "/api/v1/") {
				return nil
			}
			path := strings.TrimPrefix(route, "/api/v1")
			if len(path) > 1 {
				path = strings.TrimSuffix(path, "/")
			}
			item := doc.Paths.Find(path)
			if item == nil || item.GetOperation(method) == nil {
				missing = append(missing, method+" "+path)
			}
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(missing).To(BeEmpty())
	})
})
