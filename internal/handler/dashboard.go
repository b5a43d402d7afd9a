package handler

import (
	"log"
	"net/http"
)

// Dashboard shows the authenticated user who they are logged in as. It must be
// wrapped by Protect.
func Dashboard(page Page, templates tmpl) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Please log in through the main portal", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "dashboard.gotmpl", dashboardCtx{
			Title:  page.Title,
			UserID: user.UserID,
			Name:   user.Name,
			Email:  user.Email,
		}); err != nil {
			log.Println("handler/dashboard failed to write template:", err)
		}
	}
}

type dashboardCtx struct {
	Title  string
	UserID string
	Name   string
	Email  string
}
