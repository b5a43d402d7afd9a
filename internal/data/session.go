package data

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"hawx.me/code/portal-gate/internal/random"
)

const sessionIDLen = 32

// SessionStore is a sessions.Store that keeps values in the database. The
// cookie given to the browser only holds the signed session id.
type SessionStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	db *Database
}

// SessionStore returns a store using keyPairs to sign and optionally encrypt
// both the cookie and the stored values, as for sessions.NewCookieStore.
func (d *Database) SessionStore(keyPairs ...[]byte) *SessionStore {
	s := &SessionStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			HttpOnly: true,
		},
		db: d,
	}

	s.MaxAge(86400 * 30)
	return s
}

// MaxAge sets the maximum age of the store's sessions and their cookies.
func (s *SessionStore) MaxAge(age int) {
	s.Options.MaxAge = age

	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a new session when
// there is no cookie, the stored row is missing, or it has expired.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.Codecs...); err != nil {
		return session, err
	}

	encoded, err := s.db.sessionData(id)
	if err == sql.ErrNoRows {
		return session, nil
	}
	if err != nil {
		return session, err
	}

	if err := securecookie.DecodeMulti(name, encoded, &session.Values, s.Codecs...); err != nil {
		return session, err
	}

	session.ID = id
	session.IsNew = false
	return session, nil
}

// Save writes the session values to the database and sets the cookie. A
// session with a MaxAge of zero or less is deleted instead.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge <= 0 {
		if session.ID != "" {
			if err := s.db.deleteSession(session.ID); err != nil {
				return err
			}
		}

		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		id, err := random.String(sessionIDLen)
		if err != nil {
			return err
		}
		session.ID = id
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return err
	}

	expiresAt := s.db.now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	if err := s.db.saveSession(session.ID, encoded, expiresAt); err != nil {
		return err
	}

	cookieValue, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), cookieValue, session.Options))
	return nil
}

func (d *Database) saveSession(id, encoded string, expiresAt time.Time) error {
	_, err := d.db.Exec(`
    INSERT OR REPLACE INTO session(ID, Data, CreatedAt, ExpiresAt) VALUES (?, ?, ?, ?)
  `,
		id,
		encoded,
		d.now().UTC(),
		expiresAt.UTC())

	return err
}

// sessionData returns the encoded values for the session id, deleting it and
// returning sql.ErrNoRows if it has expired.
func (d *Database) sessionData(id string) (string, error) {
	var (
		encoded   string
		expiresAt time.Time
	)

	row := d.db.QueryRow(`SELECT Data, ExpiresAt FROM session WHERE ID = ?`, id)
	if err := row.Scan(&encoded, &expiresAt); err != nil {
		return "", err
	}

	if !expiresAt.After(d.now()) {
		if err := d.deleteSession(id); err != nil {
			return "", err
		}
		return "", sql.ErrNoRows
	}

	return encoded, nil
}

func (d *Database) deleteSession(id string) error {
	_, err := d.db.Exec(`DELETE FROM session WHERE ID = ?`, id)

	return err
}
