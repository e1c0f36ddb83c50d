// Package confirm defers a destructive action until the operator confirms it.
package confirm

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hrconsole/internal"
)

// DefaultTitle is used when a request does not name its prompt.
const DefaultTitle = "Confirm Deletion"

type Action func(ctx context.Context) error

// Prompt is what the operator is asked.
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Gate holds at most one pending action. A new request replaces the pending one.
type Gate struct {
	prompt Prompt
	action Action
	logger *slog.Logger
}

func NewGate(logger *slog.Logger) *Gate {
	return &Gate{logger: logger}
}

func (g *Gate) Request(title, message string, action Action) Prompt {
	if title == "" {
		title = DefaultTitle
	}
	if g.action != nil {
		g.logger.Debug("replacing pending confirmation", "title", g.prompt.Title)
	}
	g.prompt = Prompt{Title: title, Message: message}
	g.action = action
	return g.prompt
}

func (g *Gate) Pending() (Prompt, bool) {
	if g.action == nil {
		return Prompt{}, false
	}
	return g.prompt, true
}

// Confirm runs the pending action and clears it, whether or not the action succeeds.
func (g *Gate) Confirm(ctx context.Context) error {
	if g.action == nil {
		return internal.ErrNoPendingConfirmation()
	}
	action := g.action
	g.clear()
	return action(ctx)
}

// Cancel drops the pending action without running it.
func (g *Gate) Cancel() bool {
	had := g.action != nil
	g.clear()
	return had
}

func (g *Gate) clear() {
	g.prompt = Prompt{}
	g.action = nil
}
