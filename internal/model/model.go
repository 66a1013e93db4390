// Package model defines the core domain types for the hotel booking system.
package model

import "time"

// Account is a registered user together with the bookings they own.
type Account struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	CredentialToken string    `json:"-"`
	Bookings        []Booking `json:"bookings"`
	CreatedAt       time.Time `json:"created_at"`
}

// Snapshot returns a copy of the account whose booking slice can be handed
// out without exposing the registry's backing array.
func (a *Account) Snapshot() Account {
	cp := *a
	cp.Bookings = append([]Booking(nil), a.Bookings...)
	return cp
}

// Hotel is one entry of the inventory catalog.
type Hotel struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	PricePerNight  int64  `json:"price_per_night"`
	RoomsAvailable int    `json:"rooms_available"`
}

// HotelListing pairs a hotel snapshot with its 1-based catalog position.
type HotelListing struct {
	Index int   `json:"index"`
	Hotel Hotel `json:"hotel"`
}

// Booking is a reservation of rooms at one hotel. AccountID and HotelIndex
// point back into the registry and the catalog; neither is owned.
type Booking struct {
	Reference  string    `json:"reference"`
	AccountID  string    `json:"account_id"`
	HotelIndex int       `json:"hotel_index"`
	HotelName  string    `json:"hotel_name"`
	Nights     int       `json:"nights"`
	Rooms      int       `json:"rooms"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingListing pairs a booking snapshot with its current 1-based position
// in the owner's booking sequence. Positions shift after a cancellation.
type BookingListing struct {
	Index   int     `json:"index"`
	Booking Booking `json:"booking"`
}

// Confirmation summarises a successful booking.
type Confirmation struct {
	Reference  string `json:"reference"`
	HotelName  string `json:"hotel_name"`
	Nights     int    `json:"nights"`
	Rooms      int    `json:"rooms"`
	TotalPrice int64  `json:"total_price"`
	Message    string `json:"message"`
}

// CredentialsRequest is the payload for registering, logging in and
// updating a profile.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// BookRequest is the payload for reserving rooms.
type BookRequest struct {
	HotelIndex int `json:"hotel_index"`
	Nights     int `json:"nights" validate:"required,min=1,max=365"`
	Rooms      int `json:"rooms" validate:"required,min=1"`
}

// MessageResponse wraps a human-readable result.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope. Available is only set
// when a booking was refused for lack of rooms.
type ErrorResponse struct {
	Error     string `json:"error"`
	Available *int   `json:"available,omitempty"`
}
