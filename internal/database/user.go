package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a user account in the database.
// The password is stored as a bcrypt hash only, never as plaintext.
// Records are created by registration and read by authentication; they are
// never updated or deleted.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// dummyHash is compared against when a username is unknown, so that the
// unknown-user path costs roughly the same as a wrong-password comparison.
var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

func getDummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("textlens-dummy"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// CreateUser hashes the password and persists a new user record.
// It returns ErrDuplicateUsername if the username is already taken and a
// ValidationError if either field is empty. The hash never leaves the store.
func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		log.Error("failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// VerifyCredentials checks a username/password pair against the stored hash.
// An unknown username and a wrong password are indistinguishable in the
// returned value: both yield (false, nil).
func (c *Client) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	var user User
	err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// burn a comparison to keep timing close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(getDummyHash(), []byte(password))
		return false, nil
	}
	if err != nil {
		log.Error("failed to look up user", "error", err)
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare credentials: %w", err)
	}
	return true, nil
}

// GetUserByUsername returns the user record for the given username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}
