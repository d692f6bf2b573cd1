package conversation

import (
	"github.com/s21platform/assistant-service/internal/model"
)

// ReconcileMessage replaces the entry carrying provisionalID with the
// confirmed record, preserving its position in the list. Returns false when
// the provisional entry is no longer present (superseded by a rollback or a
// reload); that is an expected race, not an error.
func ReconcileMessage(list model.MessageList, provisionalID string, confirmed model.Message) bool {
	for i := range list {
		if list[i].ID == provisionalID {
			list[i] = confirmed
			return true
		}
	}
	return false
}

// ReconcileThread is ReconcileMessage for the thread list.
func ReconcileThread(list model.ThreadList, provisionalID string, confirmed model.Thread) bool {
	for i := range list {
		if list[i].ID == provisionalID {
			list[i] = confirmed
			return true
		}
	}
	return false
}
