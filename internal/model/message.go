package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const provisionalPrefix = "local-"

// PendingPlaceholderContent is shown while a completion call is outstanding.
const PendingPlaceholderContent = "Thinking..."

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type MessageList []Message

type Message struct {
	ID        string    `db:"id" json:"id"`
	ThreadID  string    `db:"thread_id" json:"thread_id"`
	Role      Role      `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Pending marks the synthetic assistant placeholder. Never persisted.
	Pending bool `db:"-" json:"pending,omitempty"`
}

// NewProvisionalID mints a local identifier for a record that has not been
// confirmed by the store yet. Provisional identifiers are never reused.
func NewProvisionalID() string {
	return provisionalPrefix + uuid.New().String()
}

func IsProvisionalID(id string) bool {
	return strings.HasPrefix(id, provisionalPrefix)
}
