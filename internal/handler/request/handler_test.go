package request

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/middleware"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/service/directory"
	"github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/internal/store"
	pkgauth "github.com/hostelmate/marketplace-api/pkg/auth"
	"github.com/hostelmate/marketplace-api/pkg/logger"
)

type testEnv struct {
	engine *gin.Engine
	svc    *request.Service
	tokens pkgauth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv := kvstore.NewMemory()
	log := logger.Nop()
	svc := request.NewService(kv, directory.NewSampleProvider(nil), log, nil)
	tokens := pkgauth.NewJWTService("test-secret", 1)
	authMw := middleware.NewAuthMiddleware(tokens)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(authMw.Authenticate())
	NewHandler(svc, store.NewFactory(kv, log), authMw).RegisterRoutes(group)

	return &testEnv{engine: engine, svc: svc, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, userID string, userType model.UserType, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, err := e.tokens.GenerateToken(userID, userType)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) pendingRequest(t *testing.T, volunteerID string) *model.VolunteerRequest {
	t.Helper()
	req, err := e.svc.SendVolunteerRequest(context.Background(), model.RequestDraft{
		HostelID:      "hostel-1",
		HostelName:    "Sunset Hostel",
		VolunteerID:   volunteerID,
		VolunteerName: "Ana Silva",
		Message:       "Join our team",
	})
	require.NoError(t, err)
	return req
}

func TestRespondRejectsNonAddressee(t *testing.T) {
	env := newTestEnv(t)
	req := env.pendingRequest(t, "vol-A")

	w := env.do(t, http.MethodPost, "/api/v1/requests/"+req.ID+"/respond",
		"vol-B", model.UserTypeVolunteer, gin.H{"decision": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The stored request is untouched.
	stored, err := env.svc.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, stored.Status)
	assert.Nil(t, stored.ResponseDate)
}

func TestRespondByAddressee(t *testing.T) {
	env := newTestEnv(t)
	req := env.pendingRequest(t, "vol-A")

	w := env.do(t, http.MethodPost, "/api/v1/requests/"+req.ID+"/respond",
		"vol-A", model.UserTypeVolunteer, gin.H{"decision": "accepted", "message": "Happy to help!"})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.svc.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusAccepted, stored.Status)
	require.NotNil(t, stored.ResponseDate)
}

func TestRespondRequiresVolunteerAccount(t *testing.T) {
	env := newTestEnv(t)
	req := env.pendingRequest(t, "vol-A")

	w := env.do(t, http.MethodPost, "/api/v1/requests/"+req.ID+"/respond",
		"hostel-1", model.UserTypeHostel, gin.H{"decision": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendRequiresHostelAccount(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/requests",
		"vol-A", model.UserTypeVolunteer, gin.H{
			"volunteerId":   "vol-B",
			"volunteerName": "Tom",
			"message":       "hi",
		})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListRequestsIsScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	env.pendingRequest(t, "vol-A")
	env.pendingRequest(t, "vol-B")

	w := env.do(t, http.MethodGet, "/api/v1/requests", "vol-A", model.UserTypeVolunteer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []model.VolunteerRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "vol-A", resp.Data[0].VolunteerID)
}

func TestNoUnfilteredListingRoute(t *testing.T) {
	env := newTestEnv(t)
	env.pendingRequest(t, "vol-A")

	w := env.do(t, http.MethodGet, "/api/v1/admin/requests", "vol-B", model.UserTypeVolunteer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
