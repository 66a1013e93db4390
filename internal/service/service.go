// Package service implements the booking rules and orchestrates the account
// registry, the inventory catalog and the reservation ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/digest"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/metrics"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
)

// ErrUnauthenticated is returned when an operation needs a logged-in account.
var ErrUnauthenticated = errors.New("not logged in")

// ErrInvalidHotel wraps repository.ErrInvalidIndex for hotel numbers.
var ErrInvalidHotel = errors.New("invalid hotel choice")

// ErrInvalidBooking wraps repository.ErrInvalidIndex for booking numbers.
var ErrInvalidBooking = errors.New("invalid booking index")

// DuplicateAccountError names the username that was already taken.
type DuplicateAccountError struct {
	Username string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("user %s: %s", e.Username, repository.ErrDuplicateAccount)
}

// Is lets errors.Is match repository.ErrDuplicateAccount.
func (e *DuplicateAccountError) Is(target error) bool {
	return target == repository.ErrDuplicateAccount
}

// BookingEngine is the single entry point used by the host. It holds one
// session slot: empty while anonymous, otherwise the ID of the account that
// last logged in successfully.
//
// Every public method runs under one mutex, so the catalog and every
// account's booking sequence change as a unit even when the host serves
// requests from several goroutines.
type BookingEngine struct {
	mu       sync.Mutex
	accounts *repository.AccountRegistry
	catalog  *repository.InventoryCatalog
	ledger   *ReservationLedger
	digester digest.Digester
	log      *slog.Logger
	metrics  *metrics.Metrics
	session  string
}

// Option customises a BookingEngine.
type Option func(*BookingEngine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *BookingEngine) { e.log = l }
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *BookingEngine) { e.metrics = m }
}

// NewBookingEngine constructs a BookingEngine with its dependencies.
func NewBookingEngine(
	accounts *repository.AccountRegistry,
	catalog *repository.InventoryCatalog,
	digester digest.Digester,
	opts ...Option,
) *BookingEngine {
	e := &BookingEngine{
		accounts: accounts,
		catalog:  catalog,
		ledger:   NewReservationLedger(catalog),
		digester: digester,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, h := range catalog.List() {
		e.metrics.SetRooms(h.Index, h.Hotel.Name, h.Hotel.RoomsAvailable)
	}
	return e
}

// Register creates a new account. It does not log anyone in.
func (e *BookingEngine) Register(ctx context.Context, username, password string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.accounts.FindByUsername(username); ok {
		e.metrics.Registration("duplicate")
		e.log.WarnContext(ctx, "registration rejected", "username", username, "reason", "duplicate")
		return "", &DuplicateAccountError{Username: username}
	}
	token, err := e.digester.Digest(password)
	if err != nil {
		return "", fmt.Errorf("digest password: %w", err)
	}
	acc, err := e.accounts.Register(username, token)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return "", &DuplicateAccountError{Username: username}
		}
		return "", fmt.Errorf("register: %w", err)
	}

	e.metrics.Registration("ok")
	e.log.InfoContext(ctx, "account registered", "account_id", acc.ID, "username", username)
	return registeredMessage(username), nil
}

// Authenticate checks credentials and, on success, makes the account the
// current session. A failed attempt leaves the session as it was.
func (e *BookingEngine) Authenticate(ctx context.Context, username, password string) (model.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, ok := e.accounts.FindByUsername(username)
	if !ok {
		e.metrics.Login("failed")
		e.log.DebugContext(ctx, "login failed", "username", username, "reason", "unknown user")
		return model.Account{}, repository.ErrAuthFailure
	}
	if !e.digester.Verify(password, acc.CredentialToken) {
		e.metrics.Login("failed")
		e.log.DebugContext(ctx, "login failed", "username", username, "reason", "wrong password")
		return model.Account{}, repository.ErrAuthFailure
	}

	e.session = acc.ID
	e.metrics.Login("ok")
	e.log.InfoContext(ctx, "logged in", "account_id", acc.ID, "username", acc.Username)
	return acc.Snapshot(), nil
}

// Session returns the currently logged-in account.
func (e *BookingEngine) Session(ctx context.Context) (model.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.current(ctx, "session")
	if err != nil {
		return model.Account{}, err
	}
	return acc.Snapshot(), nil
}

// ListHotels returns the catalog. No login is needed.
func (e *BookingEngine) ListHotels(ctx context.Context) []model.HotelListing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.List()
}

// Book reserves rooms for the session account.
func (e *BookingEngine) Book(ctx context.Context, req model.BookRequest) (model.Confirmation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.current(ctx, "book")
	if err != nil {
		return model.Confirmation{}, err
	}

	conf, hotel, err := e.ledger.Book(acc, req.HotelIndex, req.Nights, req.Rooms)
	if err != nil {
		var inv *repository.InsufficientInventoryError
		switch {
		case errors.As(err, &inv):
			e.metrics.Booking("insufficient_inventory")
			e.log.WarnContext(ctx, "booking rejected",
				"account_id", acc.ID, "hotel_index", req.HotelIndex,
				"rooms", req.Rooms, "available", inv.Available)
			return model.Confirmation{}, err
		case errors.Is(err, repository.ErrInvalidIndex):
			e.metrics.Booking("invalid_hotel")
			e.log.WarnContext(ctx, "booking rejected", "account_id", acc.ID, "hotel_index", req.HotelIndex, "reason", "invalid hotel")
			return model.Confirmation{}, fmt.Errorf("%w: %w", ErrInvalidHotel, err)
		case errors.Is(err, ErrPriceOverflow):
			e.metrics.Booking("invalid")
			e.log.WarnContext(ctx, "booking rejected",
				"account_id", acc.ID, "hotel_index", req.HotelIndex,
				"nights", req.Nights, "rooms", req.Rooms, "reason", "price overflow")
			return model.Confirmation{}, err
		default:
			e.metrics.Booking("invalid")
			return model.Confirmation{}, err
		}
	}

	e.metrics.Booking("ok")
	e.metrics.SetRooms(req.HotelIndex, hotel.Name, hotel.RoomsAvailable)
	e.log.InfoContext(ctx, "booking created",
		"account_id", acc.ID, "reference", conf.Reference, "hotel", conf.HotelName,
		"nights", conf.Nights, "rooms", conf.Rooms, "total_price", conf.TotalPrice,
		"rooms_left", hotel.RoomsAvailable)
	return conf, nil
}

// ListBookings returns the session account's bookings in booking order.
func (e *BookingEngine) ListBookings(ctx context.Context) ([]model.BookingListing, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.current(ctx, "list bookings")
	if err != nil {
		return nil, err
	}
	return e.ledger.List(acc), nil
}

// Cancel removes the booking at 1-based position index from the session
// account and returns its rooms to the hotel.
func (e *BookingEngine) Cancel(ctx context.Context, index int) (model.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.current(ctx, "cancel")
	if err != nil {
		return model.Booking{}, err
	}

	b, hotel, err := e.ledger.Cancel(acc, index)
	if err != nil {
		e.log.WarnContext(ctx, "cancellation rejected", "account_id", acc.ID, "booking_index", index)
		return model.Booking{}, fmt.Errorf("%w: %w", ErrInvalidBooking, err)
	}

	e.metrics.Cancellation()
	e.metrics.SetRooms(b.HotelIndex, hotel.Name, hotel.RoomsAvailable)
	e.log.InfoContext(ctx, "booking cancelled",
		"account_id", acc.ID, "reference", b.Reference, "hotel", b.HotelName,
		"rooms", b.Rooms, "rooms_left", hotel.RoomsAvailable)
	return b, nil
}

// UpdateProfile replaces the session account's username and password. The
// session stays on the same account.
func (e *BookingEngine) UpdateProfile(ctx context.Context, username, password string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, err := e.current(ctx, "update profile")
	if err != nil {
		return "", err
	}
	token, err := e.digester.Digest(password)
	if err != nil {
		return "", fmt.Errorf("digest password: %w", err)
	}

	old := acc.Username
	e.accounts.UpdateProfile(acc, username, token)
	e.log.InfoContext(ctx, "profile updated", "account_id", acc.ID, "old_username", old, "username", username)
	return profileMessage(username), nil
}

// current resolves the session account. Callers hold e.mu.
func (e *BookingEngine) current(ctx context.Context, op string) (*model.Account, error) {
	if e.session == "" {
		e.log.DebugContext(ctx, "rejected anonymous request", "op", op)
		return nil, ErrUnauthenticated
	}
	acc, ok := e.accounts.FindByID(e.session)
	if !ok {
		e.session = ""
		return nil, ErrUnauthenticated
	}
	return acc, nil
}
