package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-timetable-api/internal/middleware"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Teachers  *TeacherHandler
	Classes   *ClassHandler
	Subjects  *SubjectHandler
	Timetable *TimetableHandler
	Conflicts *ConflictHandler
	Auth      *AuthHandler
	Metrics   *MetricsHandler
}

// RouteOptions tunes route registration.
type RouteOptions struct {
	APIPrefix string
	// Guard runs before every mutating route, typically JWT followed by RequireRoles.
	Guard []gin.HandlerFunc
	// Invalidator is notified after successful writes.
	Invalidator interface{ Invalidate(ctx context.Context) }
	// MetricsPath is left unregistered when empty.
	MetricsPath string
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouteOptions) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, h.Metrics.Prometheus)
	}

	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())
	if opts.Invalidator != nil {
		api.Use(middleware.InvalidateOnWrite(opts.Invalidator))
	}

	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, opts.Guard...), handler)
	}

	auth := api.Group("/auth")
	auth.POST("/token", h.Auth.Token)
	auth.GET("/me", write(h.Auth.Me)...)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.POST("", write(h.Teachers.Create)...)
	teachers.PATCH("/:id", write(h.Teachers.Update)...)
	teachers.DELETE("/:id", write(h.Teachers.Delete)...)

	availability := api.Group("/availability")
	availability.GET("/:teacherId", h.Teachers.ListAvailability)
	availability.POST("", write(h.Teachers.SetAvailability)...)

	classes := api.Group("/classes")
	classes.GET("", h.Classes.List)
	classes.GET("/:id", h.Classes.Get)
	classes.POST("", write(h.Classes.Create)...)
	classes.PATCH("/:id", write(h.Classes.Update)...)
	classes.DELETE("/:id", write(h.Classes.Delete)...)
	classes.GET("/:id/requirements", h.Classes.ListRequirements)
	classes.POST("/:id/requirements", write(h.Classes.UpsertRequirement)...)
	classes.DELETE("/requirements/:requirementId", write(h.Classes.DeleteRequirement)...)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.POST("", write(h.Subjects.Create)...)
	subjects.PATCH("/:id", write(h.Subjects.Update)...)
	subjects.DELETE("/:id", write(h.Subjects.Delete)...)

	timetable := api.Group("/timetable")
	timetable.GET("", h.Timetable.List)
	timetable.GET("/export", h.Timetable.Export)
	timetable.GET("/:id", h.Timetable.Get)
	timetable.POST("", write(h.Timetable.Create)...)
	timetable.POST("/generate", write(h.Timetable.Generate)...)
	timetable.PATCH("/:id", write(h.Timetable.Update)...)
	timetable.DELETE("/:id", write(h.Timetable.Delete)...)

	api.GET("/conflicts", h.Conflicts.List)
}
