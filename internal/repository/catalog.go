package repository

import (
	"fmt"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
)

// DefaultHotels is the catalog every booking system starts with.
func DefaultHotels() []model.Hotel {
	return []model.Hotel{
		{Name: "Hotel California", Location: "Los Angeles", PricePerNight: 200, RoomsAvailable: 10},
		{Name: "The Grand Budapest", Location: "Zubrowka", PricePerNight: 300, RoomsAvailable: 5},
		{Name: "The Plaza", Location: "New York", PricePerNight: 400, RoomsAvailable: 8},
		{Name: "Marina Bay Sands", Location: "Singapore", PricePerNight: 500, RoomsAvailable: 12},
	}
}

// InventoryCatalog owns a fixed set of hotels and their room counts.
// Hotels are addressed by 1-based position in creation order.
type InventoryCatalog struct {
	hotels   []model.Hotel
	capacity []int
}

// NewInventoryCatalog seeds a catalog with hotels. The starting room count
// of each hotel is recorded as its capacity.
func NewInventoryCatalog(hotels []model.Hotel) (*InventoryCatalog, error) {
	c := &InventoryCatalog{
		hotels:   make([]model.Hotel, len(hotels)),
		capacity: make([]int, len(hotels)),
	}
	for i, h := range hotels {
		if h.PricePerNight <= 0 {
			return nil, fmt.Errorf("hotel %q: price per night must be positive", h.Name)
		}
		if h.RoomsAvailable < 0 {
			return nil, fmt.Errorf("hotel %q: rooms available cannot be negative", h.Name)
		}
		c.hotels[i] = h
		c.capacity[i] = h.RoomsAvailable
	}
	return c, nil
}

// Size returns the number of hotels in the catalog.
func (c *InventoryCatalog) Size() int {
	return len(c.hotels)
}

// List returns a snapshot of every hotel in catalog order.
func (c *InventoryCatalog) List() []model.HotelListing {
	out := make([]model.HotelListing, len(c.hotels))
	for i, h := range c.hotels {
		out[i] = model.HotelListing{Index: i + 1, Hotel: h}
	}
	return out
}

// Hotel returns a snapshot of the hotel at index.
func (c *InventoryCatalog) Hotel(index int) (model.Hotel, error) {
	if !c.valid(index) {
		return model.Hotel{}, ErrInvalidIndex
	}
	return c.hotels[index-1], nil
}

// Capacity returns the room count the hotel at index started with.
func (c *InventoryCatalog) Capacity(index int) (int, error) {
	if !c.valid(index) {
		return 0, ErrInvalidIndex
	}
	return c.capacity[index-1], nil
}

// Reserve takes rooms out of the hotel at index and returns the hotel as it
// stands after the decrement. Nothing changes when an error is returned.
func (c *InventoryCatalog) Reserve(index, rooms int) (model.Hotel, error) {
	if !c.valid(index) {
		return model.Hotel{}, ErrInvalidIndex
	}
	h := &c.hotels[index-1]
	if h.RoomsAvailable < rooms {
		return model.Hotel{}, &InsufficientInventoryError{Available: h.RoomsAvailable}
	}
	h.RoomsAvailable -= rooms
	return *h, nil
}

// Release returns rooms to the hotel at index and returns the hotel as it
// stands afterwards. The caller guarantees rooms matches an earlier
// successful Reserve.
func (c *InventoryCatalog) Release(index, rooms int) (model.Hotel, error) {
	if !c.valid(index) {
		return model.Hotel{}, ErrInvalidIndex
	}
	h := &c.hotels[index-1]
	h.RoomsAvailable += rooms
	return *h, nil
}

// SetPrice changes the nightly price of a hotel. Existing bookings keep the
// price they were made at.
func (c *InventoryCatalog) SetPrice(index int, price int64) error {
	if !c.valid(index) {
		return ErrInvalidIndex
	}
	if price <= 0 {
		return fmt.Errorf("price per night must be positive")
	}
	c.hotels[index-1].PricePerNight = price
	return nil
}

func (c *InventoryCatalog) valid(index int) bool {
	return index >= 1 && index <= len(c.hotels)
}
