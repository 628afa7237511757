package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

// ConflictHandler serves the timetable audit.
type ConflictHandler struct {
	conflicts *service.ConflictService
}

// NewConflictHandler constructs a ConflictHandler.
func NewConflictHandler(conflicts *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts}
}

// List godoc
// @Summary Audit the timetable
// @Description Double-bookings come first, then lessons in unavailable slots. extended=true appends coverage findings.
// @Tags Conflicts
// @Produce json
// @Param extended query bool false "Include missing_subject and unassigned_period findings"
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	extended, _ := strconv.ParseBool(c.DefaultQuery("extended", "false"))
	conflicts, hit, err := h.conflicts.List(c.Request.Context(), extended)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	meta := middleware.ExtractMeta(c)
	meta["total"] = len(conflicts)
	response.JSON(c, http.StatusOK, conflicts, meta)
}
