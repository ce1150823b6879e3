package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campushire/campushire/internal/models"
	mongorepo "github.com/campushire/campushire/internal/repositories/mongo"
)

// fields stripped from audited payloads, matched case-insensitively
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
	"authorization": {},
	"secret":        {},
}

const maxAuditBody = 64 << 10 // 64 KiB per payload

type auditWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *auditWriter) Write(b []byte) (int, error) {
	if w.buf.Len() < maxAuditBody {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// AuditCapture persists one sanitized document per request to the Mongo audit
// collection. The write happens after the response on a detached context so a
// slow audit store can't stall the request path; request_id keys the
// collection's unique index, so a retried insert can't land twice.
func AuditCapture(repo mongorepo.AuditRepository, l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/ping" {
			c.Next()
			return
		}

		var reqPayload map[string]any
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody))
			if err == nil {
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
				reqPayload = sanitizePayload(body)
			}
		}

		w := &auditWriter{ResponseWriter: c.Writer}
		c.Writer = w

		start := time.Now()
		c.Next()

		reqID, _ := c.Get("request_id")
		requestID, _ := reqID.(string)

		var actorID *uint
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				actorID = &id
			}
		}

		entry := &models.AuditEntry{
			RequestID: requestID,
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    c.Writer.Status(),
			ActorID:   actorID,
			IP:        c.ClientIP(),
			LatencyMS: time.Since(start).Milliseconds(),
			Request:   reqPayload,
			Response:  sanitizePayload(w.buf.Bytes()),
			CreatedAt: time.Now().UTC(),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Insert(ctx, entry); err != nil {
				l.WithError(err).WithField("request_id", requestID).Warn("audit insert failed")
			}
		}()
	}
}

// sanitizePayload parses a JSON body and redacts sensitive fields at every
// nesting level. Non-JSON bodies are dropped, not stored raw.
func sanitizePayload(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	redact(payload)
	return payload
}

func redact(m map[string]any) {
	for k, v := range m {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			m[k] = "[REDACTED]"
			continue
		}
		switch nested := v.(type) {
		case map[string]any:
			redact(nested)
		case []any:
			for _, item := range nested {
				if mm, ok := item.(map[string]any); ok {
					redact(mm)
				}
			}
		}
	}
}
