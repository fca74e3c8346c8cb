// Package auth implements registration and credential verification on top of
// the database client, and emits state-change events so other components can
// react to login, logout and registration without being coupled to the
// presentation layer.
package auth

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"textlens/internal/database"
)

// ErrPasswordMismatch is returned when a registration's password and
// confirmation do not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Service validates credentials and creates accounts.
type Service struct {
	db *database.Client

	events *Broadcaster
}

// New creates a new authentication service backed by the given database.
func New(db *database.Client) *Service {
	return &Service{
		db:     db,
		events: NewBroadcaster(),
	}
}

// Events returns the broadcaster for auth state-change events.
func (s *Service) Events() *Broadcaster {
	return s.events
}

// Register creates a new user account. It does not log the user in;
// login is an explicit separate step.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) error {
	if username == "" {
		return &database.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" || confirmPassword == "" {
		return &database.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	if err := s.db.CreateUser(ctx, username, password); err != nil {
		return err
	}

	log.Info("user registered", "username", username)
	s.events.Publish(Event{Type: EventRegistered, Username: username})
	return nil
}

// Login verifies the credentials and, on success, emits a logged-in event.
// It returns false for unknown usernames and wrong passwords alike.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	ok, err := s.db.VerifyCredentials(ctx, username, password)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	s.events.Publish(Event{Type: EventLoggedIn, Username: username})
	return true, nil
}

// Logout emits a logged-out event for the given username. Clearing the
// session itself is the caller's responsibility.
func (s *Service) Logout(username string) {
	s.events.Publish(Event{Type: EventLoggedOut, Username: username})
}
