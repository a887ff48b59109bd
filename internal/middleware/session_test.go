package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ycode/builder-backend/internal/pkg/logger"
	"github.com/ycode/builder-backend/internal/requestdata"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newTestRouter(t *testing.T) (*gin.Engine, *requestdata.RequestData) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	captured := &requestdata.RequestData{}
	router := gin.New()
	router.Use(NewSessionMiddleware(log, testSecret).RequireSession())
	router.GET("/probe", func(c *gin.Context) {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			*captured = *rd
		}
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestRequireSessionAcceptsValidToken(t *testing.T) {
	router, captured := newTestRouter(t)
	workspaceID := uuid.New()
	sessionID := uuid.New()
	token := signToken(t, testSecret, SessionClaims{
		WorkspaceID: workspaceID.String(),
		SessionID:   sessionID.String(),
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if captured.WorkspaceID != workspaceID || captured.SessionID != sessionID {
		t.Fatalf("request data not propagated: %+v", captured)
	}
}

func TestRequireSessionRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSessionRejectsWrongSignature(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, "other-secret", SessionClaims{
		WorkspaceID: uuid.NewString(),
		SessionID:   uuid.NewString(),
	})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSessionRejectsMalformedClaims(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, testSecret, SessionClaims{
		WorkspaceID: "not-a-uuid",
		SessionID:   uuid.NewString(),
	})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireSessionAcceptsQueryToken(t *testing.T) {
	router, captured := newTestRouter(t)
	sessionID := uuid.New()
	token := signToken(t, testSecret, SessionClaims{
		WorkspaceID: uuid.NewString(),
		SessionID:   sessionID.String(),
	})
	req := httptest.NewRequest(http.MethodGet, "/probe?token="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.SessionID != sessionID {
		t.Fatalf("session id not propagated: %+v", captured)
	}
}
