package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

// Watcher keeps one user's thread list current under both local mutation and
// changes made by other sessions, delivered over the store's change stream.
// It owns only the thread list, never message contents.
type Watcher struct {
	threads  ThreadStore
	messages MessageStore
	stream   ChangeStream

	mu       sync.Mutex
	ownerID  string
	list     model.ThreadList
	onChange func(model.ThreadList)
	stop     func()
}

func NewWatcher(threads ThreadStore, messages MessageStore, stream ChangeStream) *Watcher {
	return &Watcher{
		threads:  threads,
		messages: messages,
		stream:   stream,
	}
}

// Subscribe performs one bulk load ordered by last_updated desc, then
// consumes the change stream for ownerID. Every event triggers a full
// re-fetch-and-replace of the list; the stream is at-least-once and unordered
// relative to local writes, so incremental patching is deliberately avoided.
// The returned function cancels the subscription.
func (w *Watcher) Subscribe(ctx context.Context, ownerID string, onChange func(model.ThreadList)) (func(), error) {
	loaded, err := w.threads.GetUserThreads(ctx, ownerID)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	events, stop, err := w.stream.ThreadChanges(ctx, ownerID)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	w.mu.Lock()
	w.ownerID = ownerID
	w.list = loaded
	w.onChange = onChange
	w.stop = stop
	snapshot := copyThreads(w.list)
	w.mu.Unlock()

	w.notify(snapshot)

	go w.consume(ctx, events)

	return stop, nil
}

func (w *Watcher) consume(ctx context.Context, events <-chan model.ThreadChange) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	for event := range events {
		// An event for a thread not yet visible locally is an insert, one
		// for a thread already absent is a no-op delete; replacing the whole
		// list covers both without tracking which is which.
		if event.OwnerID != "" && event.OwnerID != w.owner() {
			continue
		}
		w.refresh(ctx, logger)
	}
}

func (w *Watcher) refresh(ctx context.Context, logger logger_lib.LoggerInterface) {
	loaded, err := w.threads.GetUserThreads(ctx, w.owner())
	if err != nil {
		logger.Warn(fmt.Sprintf("thread list refresh failed, keeping previous list: %v", err))
		return
	}

	w.mu.Lock()
	w.list = loaded
	snapshot := copyThreads(w.list)
	w.mu.Unlock()

	w.notify(snapshot)
}

// CreateThread inserts a thread with the default title, optimistically
// visible before the store confirms it. Selecting it as active is the
// caller's responsibility.
func (w *Watcher) CreateThread(ctx context.Context, ownerID string) (*model.Thread, error) {
	now := time.Now()
	provisional := model.Thread{
		ID:            model.NewProvisionalID(),
		OwnerID:       ownerID,
		Title:         model.DefaultThreadTitle,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	w.mu.Lock()
	w.list = append(model.ThreadList{provisional}, w.list...)
	snapshot := copyThreads(w.list)
	w.mu.Unlock()

	w.notify(snapshot)

	confirmed, err := w.threads.CreateThread(ctx, ownerID, model.DefaultThreadTitle)
	if err != nil {
		w.removeLocal(provisional.ID)
		return nil, &PersistError{Err: err}
	}

	w.mu.Lock()
	ok := ReconcileThread(w.list, provisional.ID, *confirmed)
	snapshot = copyThreads(w.list)
	w.mu.Unlock()

	if !ok {
		// A refresh raced the insert and already replaced the list with the
		// confirmed row. Harmless.
		logger := logger_lib.FromContext(ctx, config.KeyLogger)
		logger.Warn(fmt.Sprintf("reconciliation miss: provisional thread %s already superseded", provisional.ID))
	} else {
		w.notify(snapshot)
	}

	return confirmed, nil
}

// DeleteThread removes the thread's messages first, then the thread record;
// the store gives no cascading-delete guarantee. Picking a fallback active
// thread is the caller's job, the watcher holds no notion of "active".
func (w *Watcher) DeleteThread(ctx context.Context, threadID string) error {
	if err := w.messages.DeleteThreadMessages(ctx, threadID); err != nil {
		return &PersistError{Err: err}
	}
	if err := w.threads.DeleteThread(ctx, threadID); err != nil {
		return &PersistError{Err: err}
	}

	w.removeLocal(threadID)

	return nil
}

// Threads returns a copy of the current list, sorted by last_updated desc.
func (w *Watcher) Threads() model.ThreadList {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyThreads(w.list)
}

// Reset cancels the subscription and drops all local state.
func (w *Watcher) Reset() {
	w.mu.Lock()
	stop := w.stop
	w.stop = nil
	w.list = nil
	w.onChange = nil
	w.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (w *Watcher) removeLocal(threadID string) {
	w.mu.Lock()
	removed := false
	for i := range w.list {
		if w.list[i].ID == threadID {
			w.list = append(w.list[:i], w.list[i+1:]...)
			removed = true
			break
		}
	}
	snapshot := copyThreads(w.list)
	w.mu.Unlock()

	if removed {
		w.notify(snapshot)
	}
}

func (w *Watcher) owner() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ownerID
}

func (w *Watcher) notify(threads model.ThreadList) {
	w.mu.Lock()
	onChange := w.onChange
	w.mu.Unlock()

	if onChange != nil {
		onChange(threads)
	}
}

func copyThreads(list model.ThreadList) model.ThreadList {
	out := make(model.ThreadList, len(list))
	copy(out, list)
	return out
}
