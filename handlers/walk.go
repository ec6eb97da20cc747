package handlers

import (
	"errors"
	"io"
	"net/http"

	"pawroute/middleware"
	"pawroute/services/walk"
	"pawroute/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalkHandler exposes pack-walk sessions, device position reporting and
// the live breadcrumb feed.
type WalkHandler struct {
	Sessions *walk.SessionManager
	Trackers *walk.TrackerPool
	Geo      *walk.RedisGeolocator
	Feed     *walk.Feed
	Logger   *zap.Logger
}

func NewWalkHandler(sessions *walk.SessionManager, trackers *walk.TrackerPool, geo *walk.RedisGeolocator, feed *walk.Feed, logger *zap.Logger) *WalkHandler {
	return &WalkHandler{Sessions: sessions, Trackers: trackers, Geo: geo, Feed: feed, Logger: logger}
}

// EligiblePackBookings handles GET /api/walks/pack/eligible (walker):
// today's confirmed, unlinked bookings.
func (h *WalkHandler) EligiblePackBookings(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	bookings, err := h.Sessions.EligiblePackBookings(c.Request.Context(), identity.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list eligible bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// StartPackWalk handles POST /api/walks/pack (walker).
func (h *WalkHandler) StartPackWalk(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var input struct {
		BookingIDs []string `json:"bookingIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Sessions.StartPackWalk(c.Request.Context(), identity.ID, input.BookingIDs)
	if err != nil {
		var eErr *walk.EligibilityError
		switch {
		case errors.Is(err, walk.ErrNoBookings):
			utils.JSONError(c, http.StatusBadRequest, "no bookings selected", err.Error())
		case errors.As(err, &eErr):
			utils.JSONError(c, http.StatusConflict, "booking not eligible", eErr.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to start pack walk", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/walks/sessions/:id.
func (h *WalkHandler) GetSession(c *gin.Context) {
	session, err := h.Sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "walk session not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// StartSessionTracking handles POST /api/walks/sessions/:id/track
// (walker): begins the breadcrumb sampling loop for a pack session once
// the walker is actually out with the pack.
func (h *WalkHandler) StartSessionTracking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	sessionID := c.Param("id")

	session, err := h.Sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "walk session not found", err.Error())
		return
	}
	if session.WalkerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "session belongs to a different walker")
		return
	}

	if _, err := h.Trackers.Start(sessionID, identity.ID); err != nil {
		utils.JSONError(c, http.StatusConflict, "tracking already running", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": true, "sessionId": sessionID})
}

// StopSessionTracking handles DELETE /api/walks/sessions/:id/track (walker).
func (h *WalkHandler) StopSessionTracking(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	sessionID := c.Param("id")

	session, err := h.Sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "walk session not found", err.Error())
		return
	}
	if session.WalkerID != identity.ID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "session belongs to a different walker")
		return
	}

	h.Trackers.Stop(sessionID)
	c.JSON(http.StatusOK, gin.H{"tracking": false, "sessionId": sessionID})
}

// ReportPosition handles PUT /api/walks/position (walker device): stores
// the device's latest GPS fix for the sampling loop to pick up.
func (h *WalkHandler) ReportPosition(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var pos walk.DevicePosition
	if err := c.ShouldBindJSON(&pos); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Geo.ReportPosition(c.Request.Context(), identity.ID, pos); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store position", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RecentBreadcrumbs handles GET /api/walks/sessions/:id/breadcrumbs:
// the newest samples for a session, most recent first.
func (h *WalkHandler) RecentBreadcrumbs(c *gin.Context) {
	crumbs, err := h.Feed.Recent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch breadcrumbs", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"breadcrumbs": crumbs})
}

// StreamBreadcrumbs handles GET /api/walks/sessions/:id/stream: an SSE
// stream that seeds the bounded trail window and then forwards each
// pushed breadcrumb. The subscription is released when the client
// disconnects.
func (h *WalkHandler) StreamBreadcrumbs(c *gin.Context) {
	sessionID := c.Param("id")

	follower, err := h.Feed.Follow(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to follow session", err.Error())
		return
	}
	defer follower.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	// Seed event with the current window, then one event per push.
	c.SSEvent("trail", follower.Trail().Snapshot())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case crumb, ok := <-follower.Updates():
			if !ok {
				return false
			}
			c.SSEvent("breadcrumb", crumb)
			return true
		}
	})

	h.Logger.Debug("breadcrumb stream closed", zap.String("sessionID", sessionID))
}
