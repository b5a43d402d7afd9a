// Package auth decides whether a request may see the dashboard, using either
// the session it carries or a token handed over by the main portal.
package auth

import (
	"log"
	"net/url"

	"hawx.me/code/portal-gate/internal/data"
	"hawx.me/code/portal-gate/internal/token"
)

// TokenParam is the query parameter the main portal passes its token in.
const TokenParam = "token"

type Validator interface {
	Validate(raw string) (token.Identity, error)
}

type Gate struct {
	validator Validator
}

func NewGate(validator Validator) *Gate {
	return &Gate{validator: validator}
}

// FindAndValidate looks for a token in params. If one is found and valid the
// user is stored in state and the token removed from params. If the token is
// not valid a notice is added to state explaining why, and the token is also
// removed so that it is not retried.
func (g *Gate) FindAndValidate(state *data.State, params url.Values) (token.Identity, bool) {
	if _, ok := params[TokenParam]; !ok {
		return token.Identity{}, false
	}

	raw := params.Get(TokenParam)
	params.Del(TokenParam)

	user, err := g.validator.Validate(raw)
	if err != nil {
		log.Printf("auth/gate rejected %s token: %v\n", token.KindOf(err), err)
		state.AddNotice(token.Message(err))
		return token.Identity{}, false
	}

	state.SetUser(user)
	return user, true
}

// IsAuthorized returns true if state already has an authenticated user,
// otherwise it attempts to authenticate using a token in params.
func (g *Gate) IsAuthorized(state *data.State, params url.Values) bool {
	if _, ok := state.CurrentUser(); ok {
		return true
	}

	_, ok := g.FindAndValidate(state, params)
	return ok
}

// Logout removes the authentication from state, and any token from params.
func (g *Gate) Logout(state *data.State, params url.Values) {
	state.Clear()
	params.Del(TokenParam)
}
