package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// usernamePattern is the session gate: lowercase letters, digits and
// underscores only. This is a convenience check, not a security boundary.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ownerPattern matches the owner identifiers this service issues:
// a valid username joined to a session token UUID by an underscore.
var ownerPattern = regexp.MustCompile(
	`^[a-z0-9_]+_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
)

// NormalizeUsername trims and lowercases the given username and checks it
// against the allowed pattern. Returns ErrInvalidUsername if it does not match.
func NormalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("%w: use only lowercase letters, digits and underscores", ErrInvalidUsername)
	}
	return username, nil
}

// Session identifies one logical study session: a validated username plus a
// random token. The owner string scopes every card query and mutation.
type Session struct {
	Username string    `json:"username"`
	Token    uuid.UUID `json:"session_token"`
}

// NewSession validates the username and issues a session with a fresh token.
func NewSession(username string) (*Session, error) {
	normalized, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	return &Session{Username: normalized, Token: uuid.New()}, nil
}

// Owner returns the owner identifier for the session, the scope key for
// every card the session creates or reads.
func (s *Session) Owner() string {
	return fmt.Sprintf("%s_%s", s.Username, s.Token)
}

// ValidateOwner checks that an owner identifier has the shape this service
// issues. Returns ErrInvalidOwner otherwise.
func ValidateOwner(owner string) error {
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return nil
}

// OwnerUsername extracts the username part of an owner identifier by
// stripping the trailing session token. Returns the input unchanged when it
// is not a well-formed owner.
func OwnerUsername(owner string) string {
	const tokenLen = 36 // uuid string form
	if ValidateOwner(owner) != nil || len(owner) <= tokenLen+1 {
		return owner
	}
	return owner[:len(owner)-tokenLen-1]
}
