// Package session stores the logged in administrator behind the session cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/labrocante/brocante/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrNoSession is returned when the cookie does not point to stored session data.
var ErrNoSession = errors.New("no session")

// Store is the global session store instance.
var Store *session.Store

// User is the part of the admin account kept in the session.
type User struct {
	ID       uint64
	Username string
	Email    string
}

// Data represents the session data structure.
type Data struct {
	User User
}

// NewData builds session data for an authenticated account.
func NewData(u *models.User) *Data {
	return &Data{User: User{ID: u.ID, Username: u.Username, Email: u.Email}}
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNoSession
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session data of sessionID.
func Delete(sessionID string) error {
	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store. A nil storage keeps sessions in memory.
func Init(storage fiber.Storage, expiration time.Duration) {
	Store = session.New(session.Config{
		Storage:        storage,
		Expiration:     expiration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
