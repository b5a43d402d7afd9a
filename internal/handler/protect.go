package handler

import (
	"log"
	"net/http"
	"net/url"
	"path"

	"hawx.me/code/portal-gate/internal/auth"
)

// Protect only lets requests through to the wrapped handler when they belong
// to an authenticated session, or carry a valid "token" parameter from the main
// portal. Any token is stripped from the URL by redirecting, whether or not it
// was valid. Other requests are shown a prompt to log in through the portal.
func Protect(states stateStore, gate *auth.Gate, page Page, templates tmpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := states.State(r)
			state.Init()

			query := r.URL.Query()
			_, hasToken := query[auth.TokenParam]

			authorized := gate.IsAuthorized(state, query)

			if hasToken {
				query.Del(auth.TokenParam)
				if err := state.Save(w, r); err != nil {
					log.Println("handler/protect could not save session:", err)
				}

				http.Redirect(w, r, scrubbedURI(r.URL.Path, query), http.StatusFound)
				return
			}

			user, ok := state.CurrentUser()
			if !authorized || !ok {
				if state.IsAuthenticated() {
					state.Clear()
					state.Init()
				}
				notices := state.Notices()
				if err := state.Save(w, r); err != nil {
					log.Println("handler/protect could not save session:", err)
				}

				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				if err := templates.ExecuteTemplate(w, "prompt.gotmpl", promptCtx{
					Title:     page.Title,
					PortalURL: page.PortalURL,
					Notices:   notices,
				}); err != nil {
					log.Println("handler/protect failed to write template:", err)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

type promptCtx struct {
	Title     string
	PortalURL string
	Notices   []string
}

// scrubbedURI is always a path on this host, "//host/x" becomes "/host/x".
func scrubbedURI(p string, query url.Values) string {
	uri := path.Clean("/" + p)
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}
	return uri
}
