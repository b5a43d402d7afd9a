package token

import "errors"

var (
	// ErrInvalidToken is returned when a token is malformed, has a bad signature,
	// or is signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("token: invalid")

	// ErrExpiredToken is returned when a correctly signed token is past its
	// expiry.
	ErrExpiredToken = errors.New("token: expired")
)

// DecodeError is returned for any other failure to decode a token.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string {
	return "token: " + e.Msg
}

// Kind groups validation failures by how they are reported to the user.
type Kind int

const (
	Invalid Kind = iota + 1
	Expired
	Other
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Expired:
		return "expired"
	default:
		return "other"
	}
}

// KindOf returns the Kind of a validation error.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return Expired
	case errors.Is(err, ErrInvalidToken):
		return Invalid
	default:
		return Other
	}
}

// Message returns the text to show a user whose token failed validation.
func Message(err error) string {
	switch KindOf(err) {
	case Expired:
		return "Your session has expired. Please log in again."
	case Invalid:
		return "Invalid authentication token. Please log in again."
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "Authentication error: " + decodeErr.Msg
	}
	return "Authentication error: " + err.Error()
}
