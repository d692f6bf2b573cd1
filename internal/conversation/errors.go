package conversation

import (
	"errors"
	"fmt"
)

var (
	ErrBlankMessage    = errors.New("message content is blank")
	ErrSendInFlight    = errors.New("a send is already in flight for this thread")
	ErrThreadNotActive = errors.New("thread is not the active conversation")
	ErrNotConfirmed    = errors.New("message has not been confirmed by the store yet")
)

// LoadError means a bulk fetch failed. Previous local state is retained.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load conversation state: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PersistError means a write to the remote store failed. Optimistic local
// state for user input is not rolled back; dependent placeholders are.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist to the remote store: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// CompletionError means the external completion call failed or returned an
// unusable response.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion call failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// UserMessage converts a core error into a user-visible notification in
// domain terms, without transport detail.
func UserMessage(err error) string {
	var loadErr *LoadError
	var persistErr *PersistError
	var completionErr *CompletionError

	switch {
	case errors.Is(err, ErrBlankMessage):
		return "your message is empty"
	case errors.Is(err, ErrSendInFlight):
		return "please wait for the previous message to finish"
	case errors.As(err, &loadErr):
		return "could not load the conversation"
	case errors.As(err, &completionErr):
		return "the assistant could not respond"
	case errors.As(err, &persistErr):
		return "could not send your message"
	default:
		return "something went wrong"
	}
}
