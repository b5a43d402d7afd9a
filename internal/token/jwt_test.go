package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"hawx.me/code/assert"
	"hawx.me/code/portal-gate/internal/token/tokentest"
)

var now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func newTestValidator(t *testing.T, secret string, opts ...Option) *Validator {
	v, err := NewValidator(secret, append([]Option{WithClock(fixedClock)}, opts...)...)
	assert.Nil(t, err)
	return v
}

func TestNewValidatorWithoutSecret(t *testing.T) {
	assert := assert.Wrap(t)

	v, err := NewValidator("")
	assert(err).Equal(ErrMissingSecret)
	assert(v == nil).True()
}

func TestValidate(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.Sign("S1", tokentest.Claims("u1", "a@b.com", "Alice", now.Add(time.Hour)))

	identity, err := v.Validate(raw)
	assert(err).Must.Nil()
	assert(identity).Equal(Identity{UserID: "u1", Email: "a@b.com", Name: "Alice"})
}

func TestValidateWithNumericUserID(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.Sign("S1", jwt.MapClaims{
		"user_id": 42,
		"email":   "a@b.com",
		"name":    "Alice",
		"exp":     now.Add(time.Hour).Unix(),
	})

	identity, err := v.Validate(raw)
	assert(err).Must.Nil()
	assert(identity.UserID).Equal("42")
}

func TestValidateWhenExpired(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.Sign("S1", tokentest.Claims("u1", "a@b.com", "Alice", now.Add(-time.Minute)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrExpiredToken)
	assert(KindOf(err)).Equal(Expired)
}

func TestValidateWhenExpiredWithinLeeway(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1", WithLeeway(time.Hour))

	raw := tokentest.Sign("S1", tokentest.Claims("u1", "a@b.com", "Alice", now.Add(-time.Minute)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrExpiredToken)
}

func TestValidateWhenExpiresNow(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1", WithLeeway(time.Minute))

	raw := tokentest.Sign("S1", tokentest.Claims("u1", "a@b.com", "Alice", now))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrExpiredToken)
}

func TestValidateWithDifferentSecret(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.Sign("S2", tokentest.Claims("u1", "a@b.com", "Alice", now.Add(time.Hour)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrInvalidToken)
	assert(KindOf(err)).Equal(Invalid)
}

func TestValidateWithDifferentSecretAndExpired(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.Sign("S2", tokentest.Claims("u1", "a@b.com", "Alice", now.Add(-time.Hour)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrInvalidToken)
}

func TestValidateWithUnexpectedAlgorithm(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.SignWith(jwt.SigningMethodHS512, []byte("S1"),
		tokentest.Claims("u1", "a@b.com", "Alice", now.Add(time.Hour)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrInvalidToken)
}

func TestValidateWithNoneAlgorithm(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	raw := tokentest.SignWith(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType,
		tokentest.Claims("u1", "a@b.com", "Alice", now.Add(time.Hour)))

	_, err := v.Validate(raw)
	assert(err).Equal(ErrInvalidToken)
}

func TestValidateWhenNotYetValid(t *testing.T) {
	assert := assert.Wrap(t)
	v := newTestValidator(t, "S1")

	claims := tokentest.Claims("u1", "a@b.com", "Alice", now.Add(2*time.Hour))
	claims["nbf"] = now.Add(time.Hour).Unix()

	_, err := v.Validate(tokentest.Sign("S1", claims))
	assert(err).Equal(ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	v := newTestValidator(t, "S1")

	for _, raw := range []string{
		"",
		"not-a-token",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.bm90IGpzb24.c2ln",
		"...",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := v.Validate(raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			kind := KindOf(err)
			if kind != Invalid && kind != Other {
				t.Errorf("unexpected kind %v for %v", kind, err)
			}
		})
	}
}

func TestValidateWithMissingClaims(t *testing.T) {
	v := newTestValidator(t, "S1")

	testCases := map[string]jwt.MapClaims{
		"exp":     {"user_id": "u1", "email": "a@b.com", "name": "Alice"},
		"user_id": {"email": "a@b.com", "name": "Alice", "exp": now.Add(time.Hour).Unix()},
		"email":   {"user_id": "u1", "name": "Alice", "exp": now.Add(time.Hour).Unix()},
		"name":    {"user_id": "u1", "email": "a@b.com", "exp": now.Add(time.Hour).Unix()},
	}

	for missing, claims := range testCases {
		t.Run(missing, func(t *testing.T) {
			assert := assert.Wrap(t)

			_, err := v.Validate(tokentest.Sign("S1", claims))

			var decodeErr *DecodeError
			assert(errors.As(err, &decodeErr)).Must.True()
			assert(decodeErr.Msg).Equal("missing " + missing + " claim")
			assert(KindOf(err)).Equal(Other)
		})
	}
}

func TestMessage(t *testing.T) {
	assert := assert.Wrap(t)

	assert(Message(ErrExpiredToken)).Equal("Your session has expired. Please log in again.")
	assert(Message(ErrInvalidToken)).Equal("Invalid authentication token. Please log in again.")
	assert(Message(&DecodeError{Msg: "missing exp claim"})).Equal("Authentication error: missing exp claim")
	assert(Message(errors.New("what"))).Equal("Authentication error: what")
}
