package server

import (
	"io"
	"net/http"

	"hawx.me/code/mux"
	"hawx.me/code/portal-gate/internal/auth"
	"hawx.me/code/portal-gate/internal/config"
	"hawx.me/code/portal-gate/internal/data"
	"hawx.me/code/portal-gate/internal/handler"
	"hawx.me/code/route"
)

type Templates interface {
	ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error
}

func New(
	conf config.Config,
	states *data.Sessions,
	gate *auth.Gate,
	templates Templates,
) http.Handler {
	page := handler.Page{
		Title:     conf.Title,
		PortalURL: conf.PortalURL,
	}

	protect := handler.Protect(states, gate, page, templates)

	route.Handle("/", mux.Method{
		"GET": protect(handler.Dashboard(page, templates)),
	})
	route.Handle("/logout", mux.Method{
		"POST": handler.Logout(states, gate),
	})

	return route.Default
}
