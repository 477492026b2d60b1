package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
)

// AuditRecorder persists audit rows. Satisfied by repository.AuditLogRepository.
type AuditRecorder interface {
	Create(ctx context.Context, l *model.AuditLog) error
}

// Audit records mutating requests made by authenticated users. Failures to
// write the audit row never fail the request itself.
func Audit(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		claims := GetClaims(c)
		if claims == nil {
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return
		}

		// Skip rows for requests the API rejected.
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := model.AuditLog{
			UserID:     &userID,
			Action:     c.Request.Method + " " + c.Request.URL.Path,
			EntityType: entityTypeFromPath(c.Request.URL.Path),
			EntityID:   c.Param("id"),
		}
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			entry.Details = redactBody(bodyBytes)
		}

		if err := recorder.Create(c.Request.Context(), &entry); err != nil {
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("audit log write failed")
		}
	}
}

// Credential fields must never reach the audit trail: audit-logs are
// readable by any authenticated user.
var sensitiveFields = map[string]bool{
	"password":      true,
	"password_hash": true,
}

// redactBody replaces sensitive top-level JSON fields with a placeholder.
// Bodies that are not JSON objects are dropped entirely rather than stored
// unfiltered.
func redactBody(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	redacted, placeholder := false, json.RawMessage(`"[REDACTED]"`)
	for k := range fields {
		if sensitiveFields[k] {
			fields[k] = placeholder
			redacted = true
		}
	}
	if !redacted {
		return string(body)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(out)
}

// entityTypeFromPath extracts the resource segment after the API prefix,
// e.g. "/api/v1/customers/123" -> "customers".
func entityTypeFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/v1/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}
