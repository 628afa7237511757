package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/response"
)

// ClassHandler wires class and requirement services to HTTP routes.
type ClassHandler struct {
	classes      *service.ClassService
	requirements *service.RequirementService
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(classes *service.ClassService, requirements *service.RequirementService) *ClassHandler {
	return &ClassHandler{classes: classes, requirements: requirements}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid class payload"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.UpdateClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [patch]
func (h *ClassHandler) Update(c *gin.Context) {
	var req service.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid class payload"))
		return
	}
	class, err := h.classes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Delete godoc
// @Summary Delete class
// @Description Also removes the class's requirements and timetable entries.
// @Tags Classes
// @Param id path string true "Class ID"
// @Success 204
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	if err := h.classes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRequirements godoc
// @Summary List weekly subject requirements of a class
// @Tags Requirements
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/requirements [get]
func (h *ClassHandler) ListRequirements(c *gin.Context) {
	reqs, err := h.requirements.ListByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reqs)
}

// UpsertRequirement godoc
// @Summary Set the weekly periods of a subject for a class
// @Tags Requirements
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.UpsertRequirementRequest true "Requirement payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/requirements [post]
func (h *ClassHandler) UpsertRequirement(c *gin.Context) {
	var req service.UpsertRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid requirement payload"))
		return
	}
	requirement, err := h.requirements.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requirement)
}

// DeleteRequirement godoc
// @Summary Delete a requirement
// @Tags Requirements
// @Param requirementId path string true "Requirement ID"
// @Success 204
// @Router /classes/requirements/{requirementId} [delete]
func (h *ClassHandler) DeleteRequirement(c *gin.Context) {
	if err := h.requirements.Delete(c.Request.Context(), c.Param("requirementId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
