package entity

import (
	"github.com/google/uuid"
	"time"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditEntry records one successful mutation sent to the backend.
type AuditEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Resource  string    `json:"resource" bson:"resource"`
	Action    string    `json:"action" bson:"action"`
	RecordID  int64     `json:"record_id" bson:"record_id"`
	RequestID string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func NewAuditEntry(resource, action string, recordID int64) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.NewString(),
		Resource:  resource,
		Action:    action,
		RecordID:  recordID,
		CreatedAt: time.Now(),
	}
}
