package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	"github.com/noah-isme/sma-timetable-api/internal/service"
)

type testAPI struct {
	router *gin.Engine
	store  *repository.Store
	auth   *service.AuthService
}

type apiOptions struct {
	authEnabled bool
}

func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	sources := service.Sources{
		Teachers:     store.Teachers,
		Classes:      store.Classes,
		Subjects:     store.Subjects,
		Requirements: store.Requirements,
		Availability: store.Availability,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	authSvc := service.NewAuthService(validate, nil, service.AuthConfig{
		Secret:            "test-secret",
		Expiry:            time.Hour,
		Issuer:            "test",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})

	conflicts := service.NewConflictService(sources, store.Timetable, nil, metrics, nil)
	h := Handlers{
		Teachers: NewTeacherHandler(
			service.NewTeacherService(store.Teachers, validate, nil),
			service.NewAvailabilityService(store.Availability, store.Teachers, validate, nil),
		),
		Classes: NewClassHandler(
			service.NewClassService(store.Classes, validate, nil),
			service.NewRequirementService(store.Requirements, store.Classes, store.Subjects, validate, nil),
		),
		Subjects: NewSubjectHandler(service.NewSubjectService(store.Subjects, validate, nil)),
		Timetable: NewTimetableHandler(
			service.NewTimetableEntryService(store.Timetable, store.Classes, store.Teachers, store.Subjects, store.Availability, validate, nil),
			service.NewTimetableService(sources, store.Timetable, scheduler.NewSeededSource(1), validate, metrics, nil),
			service.NewExportService(store.Classes, store.Timetable, store.Teachers, store.Subjects, nil),
		),
		Conflicts: NewConflictHandler(conflicts),
		Auth:      NewAuthHandler(authSvc),
		Metrics:   NewMetricsHandler(metrics, map[string]Pinger{"storage": store}),
	}

	routeOpts := RouteOptions{APIPrefix: "/api", Invalidator: conflicts, MetricsPath: "/metrics"}
	if opts.authEnabled {
		routeOpts.Guard = []gin.HandlerFunc{middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin)}
	}

	r := gin.New()
	RegisterRoutes(r, h, routeOpts)
	return &testAPI{router: r, store: store, auth: authSvc}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), rec.Body.String())
	}
	return env
}

func (a *testAPI) create(t *testing.T, path string, body interface{}, out interface{}) {
	t.Helper()
	rec := a.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, out)
}
