package console

import (
	"net/http"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/auth"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/transport"
	"github.com/frahmantamala/hrconsole/internal/view"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Console *Console
}

func NewHandler(baseHandler *transport.BaseHandler, c *Console) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Console:     c,
	}
}

// RegisterRoutes mounts the console endpoints on r. Every route is applied through the session
// lock, so the console itself answers NOT_SIGNED_IN where a user is needed.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", h.Login)
		ar.Post("/register", h.Register)
		ar.Post("/logout", h.Logout)
	})
	r.Get("/session", h.GetSession)
	r.Get("/views/{name}", h.ShowView)

	r.Route("/forms", func(fr chi.Router) {
		fr.Get("/active", h.GetActiveForm)
		fr.Post("/active/submit", h.SubmitForm)
		fr.Delete("/active", h.CloseForm)
		fr.Get("/{kind}/new", h.OpenCreateForm)
		fr.Get("/{kind}/{id}/edit", h.OpenEditForm)
	})

	r.Route("/confirmation", func(cr chi.Router) {
		cr.Get("/", h.GetConfirmation)
		cr.Post("/confirm", h.Confirm)
		cr.Post("/cancel", h.Cancel)
	})

	r.Delete("/{collection}/{id}", h.RequestDelete)
}

// ----------------- AUTH -----------------

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto auth.CredentialsDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	session, err := h.Console.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto auth.CredentialsDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	session, err := h.Console.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Console.Logout(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Console.State())
}

// ----------------- VIEWS -----------------

func (h *Handler) ShowView(w http.ResponseWriter, r *http.Request) {
	name, ok := view.ParseName(chi.URLParam(r, "name"))
	if !ok {
		h.WriteAppError(w, internal.NewNotFoundError("Unknown view.", internal.ErrCodeUnknownView))
		return
	}

	page, err := h.Console.Show(r.Context(), name)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// ----------------- FORMS -----------------

func (h *Handler) OpenCreateForm(w http.ResponseWriter, r *http.Request) {
	h.openForm(w, r, "")
}

func (h *Handler) OpenEditForm(w http.ResponseWriter, r *http.Request) {
	h.openForm(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) openForm(w http.ResponseWriter, r *http.Request, id string) {
	kind, ok := h.kindParam(w, r, "kind")
	if !ok {
		return
	}

	d, err := h.Console.OpenForm(r.Context(), kind, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) GetActiveForm(w http.ResponseWriter, r *http.Request) {
	d, err := h.Console.ActiveForm()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

// SubmitForm takes a flat JSON object of field name to string value.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	input := map[string]string{}
	if err := h.DecodeJSON(r, &input); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Console.SubmitForm(r.Context(), input)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CloseForm(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]bool{"closed": h.Console.CloseForm()})
}

// ----------------- DELETES -----------------

func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r, "collection")
	if !ok {
		return
	}

	prompt, err := h.Console.RequestDelete(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusAccepted, prompt)
}

func (h *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.Console.PendingConfirmation()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, prompt)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	result, err := h.Console.Confirm(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]bool{"cancelled": h.Console.Cancel()})
}

func (h *Handler) kindParam(w http.ResponseWriter, r *http.Request, param string) (document.Kind, bool) {
	kind, ok := document.ParseKind(chi.URLParam(r, param))
	if !ok {
		h.WriteAppError(w, internal.NewNotFoundError("Unknown entity kind.", internal.ErrCodeUnknownKind))
		return "", false
	}
	return kind, true
}
