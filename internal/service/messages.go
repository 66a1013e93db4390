package service

import (
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/digest"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
)

// NoBookingsMessage is shown in place of an empty booking list.
const NoBookingsMessage = "No bookings found."

// HotelLine renders one catalog entry for display.
func HotelLine(l model.HotelListing) string {
	return fmt.Sprintf("%d. %s in %s - $%d per night - %d rooms available",
		l.Index, l.Hotel.Name, l.Hotel.Location, l.Hotel.PricePerNight, l.Hotel.RoomsAvailable)
}

// BookingLine renders one booking for display.
func BookingLine(l model.BookingListing) string {
	return fmt.Sprintf("%d. %s for %d nights and %d rooms. Total price: $%d",
		l.Index, l.Booking.HotelName, l.Booking.Nights, l.Booking.Rooms, l.Booking.TotalPrice)
}

// CancelledMessage describes a removed booking.
func CancelledMessage(b model.Booking) string {
	return fmt.Sprintf("Cancelled booking: %s for %d nights and %d rooms.", b.HotelName, b.Nights, b.Rooms)
}

func confirmationMessage(c model.Confirmation) string {
	return fmt.Sprintf("Booking successful: %s for %d nights and %d rooms. Total price: $%d",
		c.HotelName, c.Nights, c.Rooms, c.TotalPrice)
}

func registeredMessage(username string) string {
	return fmt.Sprintf("User %s registered successfully.", username)
}

// LoggedInMessage greets a freshly authenticated user.
func LoggedInMessage(username string) string {
	return fmt.Sprintf("User %s logged in successfully.", username)
}

func profileMessage(username string) string {
	return fmt.Sprintf("Profile updated: Username - %s", username)
}

// UserMessage converts an engine error into the text shown to the user.
// Errors outside the booking taxonomy get a generic message.
func UserMessage(err error) string {
	var dup *DuplicateAccountError
	var inv *repository.InsufficientInventoryError
	switch {
	case errors.As(err, &dup):
		return fmt.Sprintf("User %s already exists.", dup.Username)
	case errors.Is(err, repository.ErrAuthFailure):
		return "Invalid username or password."
	case errors.Is(err, ErrUnauthenticated):
		return "You need to login first."
	case errors.As(err, &inv):
		return fmt.Sprintf("Not enough rooms available. Only %d rooms left.", inv.Available)
	case errors.Is(err, ErrInvalidHotel):
		return "Invalid hotel choice."
	case errors.Is(err, ErrInvalidBooking):
		return "Invalid booking index."
	case errors.Is(err, ErrInvalidQuantity):
		return "Nights and rooms must be at least 1."
	case errors.Is(err, ErrPriceOverflow):
		return "Booking total is too large. Book fewer nights or rooms."
	case errors.Is(err, digest.ErrPasswordTooLong):
		return fmt.Sprintf("Password must be at most %d bytes.", digest.MaxBcryptPasswordBytes)
	default:
		return "Something went wrong. Please try again."
	}
}
