package model

import "fmt"

type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "insert"
	ChangeOpUpdate ChangeOp = "update"
	ChangeOpDelete ChangeOp = "delete"
)

func ParseChangeOp(s string) (ChangeOp, error) {
	switch op := ChangeOp(s); op {
	case ChangeOpInsert, ChangeOpUpdate, ChangeOpDelete:
		return op, nil
	default:
		return "", fmt.Errorf("unknown change operation: %q", s)
	}
}

// ThreadChange is one event of the thread change-notification stream.
// Delivery is at-least-once and unordered relative to the writes that
// produced it; consumers re-fetch instead of trusting the payload.
type ThreadChange struct {
	Op       ChangeOp `json:"op"`
	ThreadID string   `json:"thread_id"`
	OwnerID  string   `json:"owner_id"`
}
