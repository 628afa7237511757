package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

// TimetableHandler exposes manual entry editing, generation and export.
type TimetableHandler struct {
	entries   *service.TimetableEntryService
	timetable *service.TimetableService
	exports   *service.ExportService
}

// NewTimetableHandler constructs a TimetableHandler.
func NewTimetableHandler(entries *service.TimetableEntryService, timetable *service.TimetableService, exports *service.ExportService) *TimetableHandler {
	return &TimetableHandler{entries: entries, timetable: timetable, exports: exports}
}

// List godoc
// @Summary List timetable entries
// @Tags Timetable
// @Produce json
// @Param classId query string false "Only entries of this class"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	entries, err := h.entries.List(c.Request.Context(), c.Query("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Get godoc
// @Summary Get timetable entry
// @Tags Timetable
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	entry, err := h.entries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Create godoc
// @Summary Place a lesson
// @Description Overwrites the entry holding the same class slot. The teacher must be qualified, available and free.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.CreateTimetableEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req service.CreateTimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid timetable entry payload"))
		return
	}
	entry, err := h.entries.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update a lesson
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body service.UpdateTimetableEntryRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable/{id} [patch]
func (h *TimetableHandler) Update(c *gin.Context) {
	var req service.UpdateTimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid timetable entry payload"))
		return
	}
	entry, err := h.entries.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a lesson
// @Tags Timetable
// @Param id path string true "Entry ID"
// @Success 204
// @Router /timetable/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.entries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Generate godoc
// @Summary Regenerate the whole timetable
// @Description Clears every entry and schedules all requirements again. The optional body replaces the requirements of the listed classes for this run.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.GenerateTimetableRequest false "Requirement override"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req service.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, bindError(err, "invalid generate payload"))
		return
	}
	result, err := h.timetable.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export a class timetable
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param classId query string true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	file, err := h.exports.Export(c.Request.Context(), c.Query("classId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
