package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"reflow_oven/internal/profile"
	"reflow_oven/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref = "invalid body: "
	errInvalidPos      = "invalid setpoint position"
	errInvalidTime     = "invalid 't' query parameter; pass elapsed seconds"
	errSaveProfile     = "failed to save profile"
)

// Request DTO for selecting a profile.
type selectRequest struct {
	Index int `json:"index"`
}

// SelectProfileRequest is an exported model for Swagger docs of the select payload.
type SelectProfileRequest struct {
	// Unified profile index; out-of-range values wrap back into range.
	Index int `json:"index" example:"4"`
}

// Request DTO for renaming the current profile.
type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Request DTO for a single setpoint write.
type setpointRequest struct {
	Value int `json:"value"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      List profiles
// @Description  Built-in (rom) and user-editable (stored) profiles in one index space
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, profiles"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/profiles [get]
// @Security     BearerAuth
func (h *Handler) listProfiles(c *gin.Context) {
	profiles := h.services.Profiles.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// @Summary      Current profile
// @Description  Selected profile with its full setpoint table
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/profiles/current [get]
// @Security     BearerAuth
func (h *Handler) currentProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Profiles.Current(c.Request.Context()))
}

// @Summary      Select profile
// @Description  Out-of-range indices wrap around the profile list
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body   SelectProfileRequest  true  "Select payload"
// @Success      200   {object}  map[string]interface{}  "index, name"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/profiles/select [post]
// @Security     BearerAuth
func (h *Handler) selectProfile(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	resolved, err := h.services.Profiles.Select(ctx, req.Index)
	if err != nil && h.log != nil {
		// Selection took effect even if the audit event failed.
		h.log.Errorw("profile_select_event_failed", "err", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"index":   resolved,
		"profile": h.services.Profiles.Current(ctx),
	})
}

// @Summary      Rename current profile
// @Description  Built-in profiles are read-only; the response carries the name in effect
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Success      200   {object}  map[string]string  "name"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/profiles/current/name [put]
// @Security     BearerAuth
func (h *Handler) renameProfile(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	name, err := h.services.Profiles.Rename(c.Request.Context(), req.Name)
	if err != nil && h.log != nil {
		h.log.Errorw("profile_rename_event_failed", "err", err)
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

// @Summary      Set one setpoint
// @Description  Writes position pos of the current profile; the response carries the stored value, re-read after the write
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        pos   path   int  true  "Setpoint position [0,48)"
// @Success      200   {object}  map[string]interface{}  "pos, stored"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "write rejected; stored value unchanged"
// @Router       /api/v1/profiles/current/setpoints/{pos} [put]
// @Security     BearerAuth
func (h *Handler) setSetpoint(c *gin.Context) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPos})
		return
	}
	var req setpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	stored, err := h.services.Profiles.SetSetpoint(c.Request.Context(), pos, req.Value)
	if errors.Is(err, service.ErrSetpointRejected) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"pos":    pos,
			"stored": stored,
		})
		return
	}
	if err != nil && h.log != nil {
		h.log.Errorw("profile_edit_event_failed", "err", err, "pos", pos)
	}
	c.JSON(http.StatusOK, gin.H{"pos": pos, "stored": stored})
}

// @Summary      Save current profile
// @Description  Commits the working copy of the current profile to permanent storage
// @Tags         profiles
// @Produce      json
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "current profile is built-in"
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/profiles/current/save [post]
// @Security     BearerAuth
func (h *Handler) saveProfile(c *gin.Context) {
	err := h.services.Profiles.Save(c.Request.Context())
	switch {
	case errors.Is(err, profile.ErrReadOnlyProfile):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveProfile, "profile_save_failed", err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "saved"})
	}
}

// @Summary      Interpolated setpoint
// @Description  Target temperature of the current profile at elapsed time t; 0 means past the end of the profile
// @Tags         profiles
// @Produce      json
// @Param        t  query   number  true  "Elapsed seconds"  example(215)
// @Success      200   {object}  map[string]interface{}  "t, setpoint_c"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/setpoint [get]
// @Security     BearerAuth
func (h *Handler) setpointAt(c *gin.Context) {
	t, err := strconv.ParseFloat(c.Query("t"), 64)
	if err != nil || t < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidTime})
		return
	}
	sp := h.services.Profiles.SetpointAt(c.Request.Context(), t)
	c.JSON(http.StatusOK, gin.H{"t": t, "setpoint_c": sp})
}
