package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/doctor-api/internal/handler/appointment"
	authhandler "github.com/jwalitptl/doctor-api/internal/handler/auth"
	"github.com/jwalitptl/doctor-api/internal/handler/dashboard"
	"github.com/jwalitptl/doctor-api/internal/handler/emergency"
	"github.com/jwalitptl/doctor-api/internal/handler/health"
	"github.com/jwalitptl/doctor-api/internal/handler/patient"
	"github.com/jwalitptl/doctor-api/internal/handler/prometheus"
	"github.com/jwalitptl/doctor-api/internal/middleware"
	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	appointmentsvc "github.com/jwalitptl/doctor-api/internal/service/appointment"
	emergencysvc "github.com/jwalitptl/doctor-api/internal/service/emergency"
	patientsvc "github.com/jwalitptl/doctor-api/internal/service/patient"
	"github.com/jwalitptl/doctor-api/pkg/auth"
	"github.com/jwalitptl/doctor-api/pkg/metrics"
	"github.com/jwalitptl/doctor-api/pkg/validator"
)

type memoryPatients struct {
	mu       sync.Mutex
	patients map[uuid.UUID]model.Patient
}

func (m *memoryPatients) Create(_ context.Context, p *model.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = *p
	return nil
}

func (m *memoryPatients) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memoryPatients) Update(_ context.Context, p *model.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = *p
	return nil
}

func (m *memoryPatients) List(context.Context) ([]*model.Patient, error) {
	return []*model.Patient{}, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, model.ActivityKind, *uuid.UUID, string) {}

type pingOK struct{}

func (pingOK) PingContext(context.Context) error { return nil }

type noLogin struct{}

func (noLogin) Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error) {
	return &model.LoginResponse{Token: "t"}, nil
}

type emptyDashboard struct{}

func (emptyDashboard) GetDashboard(context.Context) (*model.Dashboard, error) {
	return &model.Dashboard{}, nil
}

var jwtSvc = auth.NewJWTService("router-test", time.Hour)

func newRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Register()

	patients := &memoryPatients{patients: map[uuid.UUID]model.Patient{}}
	cfg.CORSConfig = middleware.DefaultCORSConfig(nil)

	r := NewRouter(middleware.NewAuthMiddleware(jwtSvc), Handlers{
		Health:      health.NewHandler(pingOK{}),
		Metrics:     prometheus.New(metrics.New("doctor")),
		Auth:        authhandler.NewHandler(noLogin{}),
		Dashboard:   dashboard.NewHandler(emptyDashboard{}),
		Patient:     patient.NewHandler(patientsvc.NewService(patients, nopRecorder{})),
		Appointment: appointment.NewHandler(appointmentsvc.NewService(nil, nopRecorder{})),
		Emergency:   emergency.NewHandler(emergencysvc.NewService(nil, nopRecorder{})),
	}, cfg)
	r.Setup()
	return r.Engine()
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatientThenFetch(t *testing.T) {
	r := newRouter(RouterConfig{})

	w := do(r, http.MethodPost, "/api/patients", `{"name":"A","age":30,"gender":"F","condition":"x","status":"active"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	w = do(r, http.MethodGet, "/api/patients/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	for _, field := range []string{"id", "name", "age", "gender", "condition", "status"} {
		assert.Equal(t, created[field], fetched[field], field)
	}
	assert.Equal(t, "A", fetched["name"])
	assert.Equal(t, float64(30), fetched["age"])
}

func TestOperationalRoutes(t *testing.T) {
	r := newRouter(RouterConfig{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health/ready", "").Code)

	w := do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "doctor_http_requests_total")
}

func TestUnknownAPIRoute(t *testing.T) {
	r := newRouter(RouterConfig{})

	w := do(r, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"not found"}`, w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	r := newRouter(RouterConfig{AuthRequired: true})

	w := do(r, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login stays public.
	w = do(r, http.MethodPost, "/api/login", `{"email":"a@b.c","password":"p"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	token, err := jwtSvc.GenerateAccessToken(auth.Subject{UserID: uuid.NewString(), Role: "doctor"})
	require.NoError(t, err)
	w = do(r, http.MethodGet, "/api/dashboard", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServesFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	r := newRouter(RouterConfig{StaticDir: dir})

	w := do(r, http.MethodGet, "/assets/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())
	assert.Equal(t, middleware.StaticCacheControl, w.Header().Get("Cache-Control"))

	w = do(r, http.MethodGet, "/emergency/123", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>app</html>", w.Body.String())

	w = do(r, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
