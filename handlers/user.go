package handlers

import (
	"net/http"

	"pawroute/middleware"
	"pawroute/models"
	"pawroute/services/user"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes client account endpoints.
type UserHandler struct {
	Svc user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// RegisterUser handles POST /api/users/register.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var reg models.UserRegistration
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

// AuthenticateUser handles POST /api/users/login.
func (h *UserHandler) AuthenticateUser(c *gin.Context) {
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

// GetProfile handles GET /api/users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	u, err := h.Svc.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PATCH /api/users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		Phone    string `json:"phone"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), identity.ID, input.Phone, input.Username)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMToken handles PUT /api/users/me/fcm-token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
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

// RevokeToken handles DELETE /api/users/me/token.
func (h *UserHandler) RevokeToken(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.Svc.RevokeToken(c.Request.Context(), identity.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "revoke failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteAccount handles DELETE /api/users/me.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.Svc.Delete(c.Request.Context(), identity.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
