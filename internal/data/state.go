package data

import (
	"encoding/gob"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"hawx.me/code/portal-gate/internal/token"
)

const (
	authenticatedKey = "authenticated"
	userKey          = "user"
	noticeKey        = "notice"
)

func init() {
	gob.Register(token.Identity{})
	// flashes
	gob.Register([]interface{}{})
}

// State is the authentication state of a single user's session.
type State struct {
	session *sessions.Session
}

// NewState wraps an existing session.
func NewState(session *sessions.Session) *State {
	return &State{session: session}
}

// Init sets authenticated to false, unless it has already been set.
func (s *State) Init() {
	if _, ok := s.session.Values[authenticatedKey]; !ok {
		s.session.Values[authenticatedKey] = false
	}
}

func (s *State) IsAuthenticated() bool {
	authenticated, _ := s.session.Values[authenticatedKey].(bool)
	return authenticated
}

// CurrentUser returns the user that authenticated, if there is one.
func (s *State) CurrentUser() (token.Identity, bool) {
	if !s.IsAuthenticated() {
		return token.Identity{}, false
	}

	user, ok := s.session.Values[userKey].(token.Identity)
	return user, ok
}

func (s *State) SetUser(user token.Identity) {
	s.session.Values[authenticatedKey] = true
	s.session.Values[userKey] = user
}

// Clear removes the authentication from the session.
func (s *State) Clear() {
	delete(s.session.Values, authenticatedKey)
	delete(s.session.Values, userKey)
}

// AddNotice queues a message to show the user on their next page.
func (s *State) AddNotice(msg string) {
	s.session.AddFlash(msg, noticeKey)
}

// Notices returns, and removes, any queued messages.
func (s *State) Notices() []string {
	var notices []string
	for _, flash := range s.session.Flashes(noticeKey) {
		if msg, ok := flash.(string); ok {
			notices = append(notices, msg)
		}
	}
	return notices
}

func (s *State) Save(w http.ResponseWriter, r *http.Request) error {
	return s.session.Save(r, w)
}

// Sessions loads State from a named session in a sessions.Store.
type Sessions struct {
	store sessions.Store
	name  string
}

func NewSessions(store sessions.Store, name string) *Sessions {
	return &Sessions{store: store, name: name}
}

// State returns the State for the request. If the existing session could not
// be decoded a fresh one is used.
func (s *Sessions) State(r *http.Request) *State {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		log.Println("data/sessions could not decode session, starting a new one:", err)
	}
	if session == nil {
		session = sessions.NewSession(s.store, s.name)
		session.IsNew = true
	}

	return NewState(session)
}
