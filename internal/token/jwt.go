// Package token verifies the signed credentials handed to the dashboard by the
// main portal.
package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned by NewValidator when no signing secret has been
// configured.
var ErrMissingSecret = errors.New("token: signing secret is required")

// Identity is the user that a valid token asserts.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type claims struct {
	jwt.RegisteredClaims
	UserID *claimString `json:"user_id"`
	Email  *string      `json:"email"`
	Name   *string      `json:"name"`
}

// claimString accepts either a JSON string or a JSON number, as the portal
// issues numeric user ids.
type claimString string

func (s *claimString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		*s = claimString(t)
	case json.Number:
		*s = claimString(t.String())
	default:
		return fmt.Errorf("expected string or number, got %T", v)
	}

	return nil
}

// Option configures a Validator.
type Option func(*Validator)

// WithLeeway allows for clock skew in the signature checks. The final expiry
// check is always strict.
func WithLeeway(d time.Duration) Option {
	return func(v *Validator) {
		v.leeway = d
	}
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// Validator checks HS256 tokens against a shared secret.
type Validator struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

// NewValidator creates a Validator for the secret. It is an error to give an
// empty secret.
func NewValidator(secret string, opts ...Option) (*Validator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	v := &Validator{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Validate decodes raw and returns the Identity it carries. The error, if not
// nil, is one of ErrInvalidToken, ErrExpiredToken or a *DecodeError.
func (v *Validator) Validate(raw string) (Identity, error) {
	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}

	if c.ExpiresAt == nil {
		return Identity{}, &DecodeError{Msg: "missing exp claim"}
	}
	if !c.ExpiresAt.Time.After(v.now()) {
		return Identity{}, ErrExpiredToken
	}

	switch {
	case c.UserID == nil:
		return Identity{}, &DecodeError{Msg: "missing user_id claim"}
	case c.Email == nil:
		return Identity{}, &DecodeError{Msg: "missing email claim"}
	case c.Name == nil:
		return Identity{}, &DecodeError{Msg: "missing name claim"}
	}

	return Identity{
		UserID: string(*c.UserID),
		Email:  *c.Email,
		Name:   *c.Name,
	}, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ErrInvalidToken
	default:
		return &DecodeError{Msg: err.Error()}
	}
}
