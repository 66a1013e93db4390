// Package repository holds the in-memory stores behind the booking system:
// the account registry and the hotel inventory catalog. Nothing here is
// persisted; state lives for the lifetime of the process.
package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/google/uuid"
)

// ErrDuplicateAccount is returned when a username is already registered.
var ErrDuplicateAccount = errors.New("account already exists")

// ErrAuthFailure is returned for an unknown username or a wrong password.
var ErrAuthFailure = errors.New("invalid username or password")

// ErrInvalidIndex is returned when a hotel or booking number is out of range.
var ErrInvalidIndex = errors.New("index out of range")

// ErrInsufficientInventory is matched by InsufficientInventoryError.
var ErrInsufficientInventory = errors.New("not enough rooms available")

// InsufficientInventoryError reports how many rooms were left when a
// reservation was refused.
type InsufficientInventoryError struct {
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: only %d left", ErrInsufficientInventory, e.Available)
}

// Is lets errors.Is match the sentinel.
func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// AccountRegistry owns every registered account, in registration order.
type AccountRegistry struct {
	accounts []*model.Account
	now      func() time.Time
}

// NewAccountRegistry constructs an empty AccountRegistry.
func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{now: func() time.Time { return time.Now().UTC() }}
}

// Register creates an account holding an already-digested credential.
func (r *AccountRegistry) Register(username, token string) (*model.Account, error) {
	if _, ok := r.FindByUsername(username); ok {
		return nil, ErrDuplicateAccount
	}
	acc := &model.Account{
		ID:              uuid.New().String(),
		Username:        username,
		CredentialToken: token,
		Bookings:        []model.Booking{},
		CreatedAt:       r.now(),
	}
	r.accounts = append(r.accounts, acc)
	return acc, nil
}

// FindByUsername returns the first account, in registration order, whose
// current username matches exactly.
func (r *AccountRegistry) FindByUsername(username string) (*model.Account, bool) {
	for _, acc := range r.accounts {
		if acc.Username == username {
			return acc, true
		}
	}
	return nil, false
}

// FindByID resolves an account by its stable identifier.
func (r *AccountRegistry) FindByID(id string) (*model.Account, bool) {
	for _, acc := range r.accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return nil, false
}

// UpdateProfile overwrites the username and credential of acc in place.
// The new username is not checked against other accounts.
func (r *AccountRegistry) UpdateProfile(acc *model.Account, username, token string) {
	acc.Username = username
	acc.CredentialToken = token
}

// Len returns the number of registered accounts.
func (r *AccountRegistry) Len() int {
	return len(r.accounts)
}
