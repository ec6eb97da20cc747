package handlers

import (
	"errors"
	"net/http"

	bookingRepo "pawroute/database/repository/booking"
	"pawroute/middleware"
	"pawroute/models"
	"pawroute/services/booking"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// respondBookingError maps service errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var tErr *booking.TransitionError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", vErr.Message)
	case errors.As(err, &tErr):
		utils.JSONError(c, http.StatusConflict, "illegal booking transition", tErr.Error())
	case errors.Is(err, booking.ErrNotYourBooking):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, booking.ErrNotRatable):
		utils.JSONError(c, http.StatusConflict, "booking not ratable", err.Error())
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		utils.JSONError(c, http.StatusConflict, "booking status changed", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}

// CreateBooking handles POST /api/bookings (client).
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), identity.ID, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// AcceptBooking handles PUT /api/bookings/:id/accept (walker).
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	b, err := h.Svc.AcceptBooking(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles PUT /api/bookings/:id/cancel (either party).
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	b, err := h.Svc.CancelBooking(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// StartWalk handles PUT /api/bookings/:id/start (walker).
func (h *BookingHandler) StartWalk(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	result, err := h.Svc.StartWalk(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompleteWalk handles PUT /api/bookings/:id/complete (walker).
func (h *BookingHandler) CompleteWalk(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		Notes  string `json:"notes"`
		Peed   bool   `json:"peed"`
		Pooped bool   `json:"pooped"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.CompleteWalk(c.Request.Context(), identity.ID, c.Param("id"), input.Notes, input.Peed, input.Pooped)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RateBooking handles PUT /api/bookings/:id/rating (client).
func (h *BookingHandler) RateBooking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		Stars int `json:"stars" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.RateBooking(c.Request.Context(), identity.ID, c.Param("id"), input.Stars)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetReceipt handles GET /api/bookings/:id/receipt (either party).
func (h *BookingHandler) GetReceipt(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	receipt, err := h.Svc.Receipt(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GetBooking handles GET /api/bookings/:id (either party).
func (h *BookingHandler) GetBooking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	b, err := h.Svc.GetBooking(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings handles GET /api/bookings for the authenticated actor,
// client or walker.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var (
		bookings []models.Booking
		err      error
	)
	if identity.Role == middleware.RoleWalker {
		bookings, err = h.Svc.ListWalkerBookings(c.Request.Context(), identity.ID)
	} else {
		bookings, err = h.Svc.ListClientBookings(c.Request.Context(), identity.ID)
	}
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
