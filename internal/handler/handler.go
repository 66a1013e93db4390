// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the booking engine.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/digest"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// BookingHandler holds all HTTP handlers for the hotel booking API.
type BookingHandler struct {
	svc      *service.BookingEngine
	validate *validator.Validate
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingEngine) *BookingHandler {
	return &BookingHandler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts every booking endpoint on r.
func (h *BookingHandler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/session", h.Session)
	r.Get("/hotels", h.ListHotels)
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.Book)
		r.Get("/", h.ListBookings)
		r.Delete("/{index}", h.Cancel)
	})
	r.Put("/profile", h.UpdateProfile)
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// writeEngineError maps an engine error onto a status code and the message
// the user should see.
func writeEngineError(w http.ResponseWriter, err error) {
	resp := model.ErrorResponse{Error: service.UserMessage(err)}
	var inv *repository.InsufficientInventoryError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrDuplicateAccount):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrAuthFailure), errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.As(err, &inv):
		status = http.StatusConflict
		resp.Available = &inv.Available
	case errors.Is(err, repository.ErrInvalidIndex):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrPriceOverflow),
		errors.Is(err, digest.ErrPasswordTooLong):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func (h *BookingHandler) decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Register handles POST /register
func (h *BookingHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	msg, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.MessageResponse{Message: msg})
}

// Login handles POST /login
// A successful login replaces whatever account was logged in before.
func (h *BookingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	acc, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Message: service.LoggedInMessage(acc.Username),
		Account: acc,
	})
}

type sessionResponse struct {
	Message string        `json:"message,omitempty"`
	Account model.Account `json:"account"`
}

// Session handles GET /session
func (h *BookingHandler) Session(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.Session(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Account: acc})
}

type hotelView struct {
	model.HotelListing
	Description string `json:"description"`
}

// ListHotels handles GET /hotels
func (h *BookingHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	hotels := h.svc.ListHotels(r.Context())
	out := make([]hotelView, len(hotels))
	for i, l := range hotels {
		out[i] = hotelView{HotelListing: l, Description: service.HotelLine(l)}
	}
	writeJSON(w, http.StatusOK, out)
}

// Book handles POST /bookings
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req model.BookRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	conf, err := h.svc.Book(r.Context(), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

type bookingView struct {
	model.BookingListing
	Description string `json:"description"`
}

type bookingsResponse struct {
	Bookings []bookingView `json:"bookings"`
	Message  string        `json:"message,omitempty"`
}

// ListBookings handles GET /bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListBookings(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := bookingsResponse{Bookings: make([]bookingView, len(list))}
	for i, l := range list {
		resp.Bookings[i] = bookingView{BookingListing: l, Description: service.BookingLine(l)}
	}
	if len(list) == 0 {
		resp.Message = service.NoBookingsMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

type cancelResponse struct {
	Message string        `json:"message"`
	Booking model.Booking `json:"booking"`
}

// Cancel handles DELETE /bookings/{index}
// index is the booking's current 1-based position, as shown by GET /bookings.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "booking index must be a number")
		return
	}

	b, err := h.svc.Cancel(r.Context(), index)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{Message: service.CancelledMessage(b), Booking: b})
}

// UpdateProfile handles PUT /profile
func (h *BookingHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	msg, err := h.svc.UpdateProfile(r.Context(), req.Username, req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
