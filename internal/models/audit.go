package models

import "time"

// AuditEntry is the raw per-request audit document persisted to Mongo.
// Payloads are sanitized before they get here (see middleware.AuditCapture).
type AuditEntry struct {
	RequestID string         `bson:"request_id" json:"request_id"`
	Method    string         `bson:"method" json:"method"`
	Path      string         `bson:"path" json:"path"`
	Status    int            `bson:"status" json:"status"`
	ActorID   *uint          `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	IP        string         `bson:"ip" json:"ip"`
	LatencyMS int64          `bson:"latency_ms" json:"latency_ms"`
	Request   map[string]any `bson:"request,omitempty" json:"request,omitempty"`
	Response  map[string]any `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
