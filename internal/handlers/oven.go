package handlers

import (
	"errors"
	"net/http"

	"reflow_oven/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errStartRun = "failed to start run"
	errStopRun  = "failed to stop run"
	errGetState = "failed to load state"
)

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Start reflow run
// @Description  Starts a run of the currently selected profile at elapsed time zero
// @Tags         oven
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "a run is already in progress"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/oven/start [post]
// @Security     BearerAuth
func (h *Handler) startRun(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Oven.StartRun(ctx); err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStartRun, "run_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStarted)
}

// @Summary      Stop reflow run
// @Tags         oven
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "no run in progress"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/oven/stop [post]
// @Security     BearerAuth
func (h *Handler) stopRun(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Oven.StopRun(ctx); err != nil {
		if errors.Is(err, service.ErrNoRun) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStopRun, "run_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped)
}

// @Summary      Get oven state
// @Tags         oven
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/oven/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "oven_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
