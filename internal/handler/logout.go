package handler

import (
	"log"
	"net/http"

	"hawx.me/code/portal-gate/internal/auth"
)

// Logout removes the user from the session, then redirects to the dashboard
// which will prompt them to log in again.
func Logout(states stateStore, gate *auth.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := states.State(r)

		query := r.URL.Query()
		gate.Logout(state, query)
		if err := state.Save(w, r); err != nil {
			log.Println("handler/logout could not save session:", err)
		}

		// the query, and any token in it, is not carried over to the dashboard
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
