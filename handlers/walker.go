package handlers

import (
	"net/http"

	"pawroute/middleware"
	"pawroute/models"
	"pawroute/services/walker"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
)

// WalkerHandler exposes walker account endpoints.
type WalkerHandler struct {
	Svc walker.WalkerService
}

func NewWalkerHandler(svc walker.WalkerService) *WalkerHandler {
	return &WalkerHandler{Svc: svc}
}

// RegisterWalker handles POST /api/walkers/register.
func (h *WalkerHandler) RegisterWalker(c *gin.Context) {
	var reg models.WalkerRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Register(c.Request.Context(), reg)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateWalker handles POST /api/walkers/login.
func (h *WalkerHandler) AuthenticateWalker(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Authenticate(c.Request.Context(), creds)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /api/walkers/me.
func (h *WalkerHandler) GetProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	w, err := h.Svc.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "walker not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, w)
}

// GetWalker handles GET /api/walkers/:id so clients can view a walker's
// public profile and rating before booking.
func (h *WalkerHandler) GetWalker(c *gin.Context) {
	w, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "walker not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          w.ID,
		"name":        w.Name,
		"bio":         w.Bio,
		"hourlyRate":  w.HourlyRate,
		"ratingAvg":   w.RatingAvg,
		"ratingCount": w.RatingCount,
	})
}

// UpdateProfile handles PATCH /api/walkers/me.
func (h *WalkerHandler) UpdateProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		Bio        string  `json:"bio"`
		HourlyRate float64 `json:"hourlyRate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	w, err := h.Svc.UpdateProfile(c.Request.Context(), identity.ID, input.Bio, input.HourlyRate)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, w)
}

// UpdateFCMToken handles PUT /api/walkers/me/fcm-token.
func (h *WalkerHandler) UpdateFCMToken(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.UpdateFCMToken(c.Request.Context(), identity.ID, input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RevokeToken handles DELETE /api/walkers/me/token.
func (h *WalkerHandler) RevokeToken(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.Svc.RevokeToken(c.Request.Context(), identity.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "revoke failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteAccount handles DELETE /api/walkers/me.
func (h *WalkerHandler) DeleteAccount(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.Svc.Delete(c.Request.Context(), identity.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
