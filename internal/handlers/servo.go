package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"controlling_servo/internal/service"

	"github.com/gin-gonic/gin"
)

// Validation reasons returned as plain text, one per failure mode so the
// tracking client can tell them apart.
const (
	reasonMissingBody  = "Missing request body"
	reasonInvalidJSON  = "Invalid JSON"
	reasonMissingField = "Missing 'position' field"
	reasonOutOfRange   = "Position must be 0-180"

	errMoveServo = "failed to move servo"
)

const statusOK = "ok"

// commandRequest is the SetPosition payload. Position is a pointer so a
// missing key and an explicit zero are distinguishable.
type commandRequest struct {
	Position *int `json:"position"`
}

// SetPositionRequest is an exported model for Swagger docs of the /servo payload.
type SetPositionRequest struct {
	// Servo angle in degrees, 0..180
	Position int `json:"position" example:"45"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
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

// @Summary      Set servo position
// @Description  Commands the servo to an absolute angle and resets the safety timeout.
// @Tags         servo
// @Accept       json
// @Produce      json
// @Param        body  body   SetPositionRequest  true  "Position payload"
// @Success      200   {object}  map[string]interface{}  "status, position"
// @Failure      400   {string}  string  "plain-text reason"
// @Failure      500   {object}  map[string]string
// @Router       /servo [post]
func (h *Handler) setServo(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		c.String(http.StatusBadRequest, reasonMissingBody)
		return
	}

	var req commandRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.String(http.StatusBadRequest, reasonInvalidJSON)
		return
	}
	if req.Position == nil {
		c.String(http.StatusBadRequest, reasonMissingField)
		return
	}

	st, err := h.services.Servo.SetPosition(c.Request.Context(), *req.Position)
	if err != nil {
		if errors.Is(err, service.ErrOutOfRange) {
			c.String(http.StatusBadRequest, reasonOutOfRange)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errMoveServo, "servo_move_failed", err, "position", *req.Position)
		return
	}

	if h.log != nil {
		h.log.Infow("servo_position_set", "position", st.Position, "state", st.State)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   statusOK,
		"position": st.Position,
	})
}

// @Summary      Get servo status
// @Description  Current position, process uptime (ms) and control-link RSSI (dBm).
// @Tags         servo
// @Produce      json
// @Success      200  {object}  service.Status
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetStatus(c.Request.Context()))
}

// notFound answers any unrecognized path or method with the endpoint list
// and the current position. Diagnostic convenience, not part of the state
// machine.
func (h *Handler) notFound(c *gin.Context) {
	st := h.services.Monitoring.GetStatus(c.Request.Context())
	c.String(http.StatusNotFound,
		"Servo Command Service\n\n"+
			"Available endpoints:\n"+
			"POST /servo - Set servo position (JSON: {\"position\": 0-180})\n"+
			"GET /status - Get current status\n\n"+
			fmt.Sprintf("Current position: %d\n", st.Position))
}
