package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, limit int) ([]EntryResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetActivity serves GET /activity?limit=N.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.WriteAppError(w, internal.NewValidationFieldError("limit", "limit must be a non-negative integer", internal.ErrCodeValidationFailed))
			return
		}
		limit = n
	}

	entries, err := h.Service.List(r.Context(), limit)
	if err != nil {
		h.Logger.Error("GetActivity: failed to list activity", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list activity")
		return
	}

	h.WriteJSON(w, http.StatusOK, ActivityResponse{Entries: entries})
}
