package handler

import (
	"context"
	"io"
	"net/http"

	"hawx.me/code/portal-gate/internal/data"
	"hawx.me/code/portal-gate/internal/token"
)

type tmpl interface {
	ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error
}

type stateStore interface {
	State(*http.Request) *data.State
}

// Page has the details shared by every page.
type Page struct {
	Title     string
	PortalURL string
}

type userContextKey struct{}

// UserFromContext returns the user that Protect let through.
func UserFromContext(ctx context.Context) (token.Identity, bool) {
	user, ok := ctx.Value(userContextKey{}).(token.Identity)
	return user, ok
}

func withUser(ctx context.Context, user token.Identity) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}
