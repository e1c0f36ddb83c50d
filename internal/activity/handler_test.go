package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/hrconsole/internal/activity"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/frahmantamala/hrconsole/internal/transport"
	"github.com/frahmantamala/hrconsole/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Activity Handler", func() {
	var (
		repo    *MockRepository
		handler *activity.Handler
	)

	BeforeEach(func() {
		repo = &MockRepository{}
		service := activity.NewService(repo, 50, logger.Discard())
		handler = activity.NewHandler(transport.NewBaseHandler(logger.Discard()), service)

		for _, id := range []string{"dept_1", "dept_2", "dept_3"} {
			event := events.NewEntityEvent("department", events.ActionCreated, id, "acc_1", id)
			Expect(service.HandleEntityEvent(context.Background(), event)).To(Succeed())
		}
	})

	It("should handle GET /activity request successfully", func() {
		req := httptest.NewRequest(http.MethodGet, "/activity?limit=2", nil)
		w := httptest.NewRecorder()

		handler.GetActivity(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response activity.ActivityResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Entries).To(HaveLen(2))
		Expect(response.Entries[0].EntityID).To(Equal("dept_3"))
	})

	It("should reject a malformed limit", func() {
		req := httptest.NewRequest(http.MethodGet, "/activity?limit=lots", nil)
		w := httptest.NewRecorder()

		handler.GetActivity(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 500 when the log cannot be read", func() {
		repo.failError = errors.New("boom")
		req := httptest.NewRequest(http.MethodGet, "/activity", nil)
		w := httptest.NewRecorder()

		handler.GetActivity(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
