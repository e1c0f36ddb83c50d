package view

import (
	"log/slog"
	"slices"
)

// Router keeps the single visible view and its last rendered page.
type Router struct {
	src     Source
	current Name
	page    Page
	logger  *slog.Logger
}

func NewRouter(src Source, logger *slog.Logger) *Router {
	r := &Router{src: src, logger: logger}
	r.Show(Landing)
	return r
}

// Show switches to name and renders it.
func (r *Router) Show(name Name) Page {
	r.current = name
	r.page = Render(r.src, name)
	r.logger.Debug("view shown", "view", name)
	return r.page
}

func (r *Router) Current() Name {
	return r.current
}

// Page is the last rendered page of the current view.
func (r *Router) Page() Page {
	return r.page
}

// Refresh re-renders the current view when it is one of names and reports whether it did.
func (r *Router) Refresh(names ...Name) bool {
	if !slices.Contains(names, r.current) {
		return false
	}
	r.page = Render(r.src, r.current)
	r.logger.Debug("view refreshed", "view", r.current)
	return true
}
