package service

import (
	"errors"
	"math"
	"time"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
	"github.com/google/uuid"
)

// ErrInvalidQuantity is returned when nights or rooms is below one.
var ErrInvalidQuantity = errors.New("nights and rooms must be at least 1")

// ErrPriceOverflow is returned when a booking's total does not fit in an int64.
var ErrPriceOverflow = errors.New("booking total is too large")

// ReservationLedger records bookings against accounts and keeps the catalog's
// room counts in step with them.
type ReservationLedger struct {
	catalog *repository.InventoryCatalog
	now     func() time.Time
}

// NewReservationLedger constructs a ReservationLedger over catalog.
func NewReservationLedger(catalog *repository.InventoryCatalog) *ReservationLedger {
	return &ReservationLedger{
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Book reserves rooms at the hotel in position hotelIndex and appends the
// booking to acc. Catalog errors are returned unchanged. The price is fixed
// here and never recomputed. The returned hotel is the catalog entry after
// the rooms were taken.
func (l *ReservationLedger) Book(acc *model.Account, hotelIndex, nights, rooms int) (model.Confirmation, model.Hotel, error) {
	if nights < 1 || rooms < 1 {
		return model.Confirmation{}, model.Hotel{}, ErrInvalidQuantity
	}

	// Price before reserving so a rejected total leaves inventory alone.
	hotel, err := l.catalog.Hotel(hotelIndex)
	if err != nil {
		return model.Confirmation{}, model.Hotel{}, err
	}
	total, ok := totalPrice(hotel.PricePerNight, nights, rooms)
	if !ok {
		return model.Confirmation{}, model.Hotel{}, ErrPriceOverflow
	}

	hotel, err = l.catalog.Reserve(hotelIndex, rooms)
	if err != nil {
		return model.Confirmation{}, model.Hotel{}, err
	}

	b := model.Booking{
		Reference:  uuid.New().String(),
		AccountID:  acc.ID,
		HotelIndex: hotelIndex,
		HotelName:  hotel.Name,
		Nights:     nights,
		Rooms:      rooms,
		TotalPrice: total,
		CreatedAt:  l.now(),
	}
	acc.Bookings = append(acc.Bookings, b)

	c := model.Confirmation{
		Reference:  b.Reference,
		HotelName:  b.HotelName,
		Nights:     b.Nights,
		Rooms:      b.Rooms,
		TotalPrice: b.TotalPrice,
	}
	c.Message = confirmationMessage(c)
	return c, hotel, nil
}

// totalPrice multiplies price by nights and rooms, reporting false if the
// product overflows. All inputs are positive.
func totalPrice(price int64, nights, rooms int) (int64, bool) {
	n, r := int64(nights), int64(rooms)
	if n > math.MaxInt64/price {
		return 0, false
	}
	perRoom := price * n
	if r > math.MaxInt64/perRoom {
		return 0, false
	}
	return perRoom * r, true
}

// List returns acc's bookings with their current 1-based positions.
func (l *ReservationLedger) List(acc *model.Account) []model.BookingListing {
	out := make([]model.BookingListing, len(acc.Bookings))
	for i, b := range acc.Bookings {
		out[i] = model.BookingListing{Index: i + 1, Booking: b}
	}
	return out
}

// Cancel removes the booking at 1-based position index and returns its rooms
// to the catalog. Later bookings move up one position. The returned hotel is
// the catalog entry after the rooms came back.
func (l *ReservationLedger) Cancel(acc *model.Account, index int) (model.Booking, model.Hotel, error) {
	if index < 1 || index > len(acc.Bookings) {
		return model.Booking{}, model.Hotel{}, repository.ErrInvalidIndex
	}
	b := acc.Bookings[index-1]
	hotel, err := l.catalog.Release(b.HotelIndex, b.Rooms)
	if err != nil {
		return model.Booking{}, model.Hotel{}, err
	}
	acc.Bookings = append(acc.Bookings[:index-1], acc.Bookings[index:]...)
	return b, hotel, nil
}
