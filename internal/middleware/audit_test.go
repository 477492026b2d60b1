package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
)

type recordingAuditRecorder struct {
	entries []model.AuditLog
}

func (r *recordingAuditRecorder) Create(_ context.Context, l *model.AuditLog) error {
	r.entries = append(r.entries, *l)
	return nil
}

func auditTestRouter(rec *recordingAuditRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret), Audit(rec))
	r.POST("/api/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": uuid.NewString()})
	})
	r.PUT("/api/v1/users/:id", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Validation failed"})
	})
	r.GET("/api/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	return r
}

func doAuditRequest(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAudit_RedactsPasswordFields(t *testing.T) {
	rec := &recordingAuditRecorder{}
	r := auditTestRouter(rec)
	token := signToken(t, uuid.NewString(), "admin", time.Hour)

	w := doAuditRequest(t, r, http.MethodPost, "/api/v1/users", token,
		`{"name":"Clerk","email":"clerk@shop.test","password":"super-secret-1","role":"cashier"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	assert.Equal(t, "users", entry.EntityType)
	assert.NotContains(t, entry.Details, "super-secret-1")
	assert.Contains(t, entry.Details, "[REDACTED]")
	assert.Contains(t, entry.Details, "clerk@shop.test")
}

func TestAudit_NonObjectBodyNotStored(t *testing.T) {
	rec := &recordingAuditRecorder{}
	r := auditTestRouter(rec)
	token := signToken(t, uuid.NewString(), "admin", time.Hour)

	w := doAuditRequest(t, r, http.MethodPost, "/api/v1/users", token, `"just a string"`)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, rec.entries, 1)
	assert.Empty(t, rec.entries[0].Details)
}

func TestAudit_SkipsReadsAndRejectedRequests(t *testing.T) {
	rec := &recordingAuditRecorder{}
	r := auditTestRouter(rec)
	token := signToken(t, uuid.NewString(), "admin", time.Hour)

	doAuditRequest(t, r, http.MethodGet, "/api/v1/users", token, "")
	doAuditRequest(t, r, http.MethodPut, "/api/v1/users/"+uuid.NewString(), token, `{"name":""}`)

	assert.Empty(t, rec.entries)
}
