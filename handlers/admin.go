package handlers

import (
	"net/http"

	bookingRepo "pawroute/database/repository/booking"
	userRepo "pawroute/database/repository/user"
	walkerRepo "pawroute/database/repository/walker"
	"pawroute/middleware"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the back-office endpoints.
type AdminHandler struct {
	Users    userRepo.UserRepository
	Walkers  walkerRepo.WalkerRepository
	Bookings bookingRepo.BookingRepository
}

func NewAdminHandler(users userRepo.UserRepository, walkers walkerRepo.WalkerRepository, bookings bookingRepo.BookingRepository) *AdminHandler {
	return &AdminHandler{Users: users, Walkers: walkers, Bookings: bookings}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListWalkers handles GET /api/admin/walkers.
func (h *AdminHandler) ListWalkers(c *gin.Context) {
	walkers, err := h.Walkers.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list walkers", err.Error())
		return
	}
	c.JSON(http.StatusOK, walkers)
}

// ListBookings handles GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type suspendInput struct {
	Suspended bool `json:"suspended"`
}

// SuspendUser handles PUT /api/admin/users/:id/suspend. A suspended
// account keeps its data but can no longer authenticate or act.
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	var input suspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.Users.SetSuspended(c.Request.Context(), id, input.Suspended); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update user", err.Error())
		return
	}
	if input.Suspended {
		if err := middleware.RevokeToken(c.Request.Context(), middleware.RoleClient, id); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to revoke token for suspended user %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "suspended": input.Suspended})
}

// SuspendWalker handles PUT /api/admin/walkers/:id/suspend.
func (h *AdminHandler) SuspendWalker(c *gin.Context) {
	var input suspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.Walkers.SetSuspended(c.Request.Context(), id, input.Suspended); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update walker", err.Error())
		return
	}
	if input.Suspended {
		if err := middleware.RevokeToken(c.Request.Context(), middleware.RoleWalker, id); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to revoke token for suspended walker %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "suspended": input.Suspended})
}
