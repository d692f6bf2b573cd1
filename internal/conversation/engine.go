package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

// Hooks receive list-state changes and turn failures. The engine is the only
// writer of the message list; hooks are how the rest of the system observes
// send progress. Nil hooks are skipped.
type Hooks struct {
	OnMessages  func(threadID string, messages model.MessageList)
	OnTurnError func(threadID string, err error)
}

// Engine owns the ordered message list of the active thread for one session
// and drives a user turn through send, persist, complete, persist, reconcile.
type Engine struct {
	messages  MessageStore
	threads   ThreadStore
	completer CompletionClient
	hooks     Hooks

	mu       sync.Mutex
	threadID string
	list     model.MessageList
	inflight map[string]bool
	seq      uint64

	pubMu  sync.Mutex
	pubSeq map[string]uint64
}

func New(messages MessageStore, threads ThreadStore, completer CompletionClient, hooks Hooks) *Engine {
	return &Engine{
		messages:  messages,
		threads:   threads,
		completer: completer,
		hooks:     hooks,
		inflight:  make(map[string]bool),
		pubSeq:    make(map[string]uint64),
	}
}

// LoadThread fetches the full history of threadID and makes it the active
// conversation. On failure the previously loaded thread stays visible.
func (e *Engine) LoadThread(ctx context.Context, threadID string) (model.MessageList, error) {
	loaded, err := e.messages.GetThreadMessages(ctx, threadID)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	e.mu.Lock()
	e.threadID = threadID
	e.list = loaded
	snapshot := copyMessages(e.list)
	seq := e.stamp()
	e.mu.Unlock()

	e.notifyMessages(threadID, seq, snapshot)

	return snapshot, nil
}

// SendUserMessage appends an optimistic user message and starts the
// asynchronous turn. It returns the provisional message id immediately;
// progress is observed through the list state. At most one send may be in
// flight per thread.
func (e *Engine) SendUserMessage(ctx context.Context, threadID, content, credential string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrBlankMessage
	}

	e.mu.Lock()
	if e.threadID != threadID {
		e.mu.Unlock()
		return "", ErrThreadNotActive
	}
	if e.inflight[threadID] {
		e.mu.Unlock()
		return "", ErrSendInFlight
	}
	e.inflight[threadID] = true

	userMessage := model.Message{
		ID:        model.NewProvisionalID(),
		ThreadID:  threadID,
		Role:      model.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	e.list = append(e.list, userMessage)

	// The completion payload reflects the local view at the moment of send,
	// not a server-confirmed snapshot.
	history := copyMessages(e.list)
	snapshot := copyMessages(e.list)
	seq := e.stamp()
	e.mu.Unlock()

	e.notifyMessages(threadID, seq, snapshot)

	// The turn outlives the request; the remote writes it issues stay valid
	// even if the caller switches threads meanwhile.
	go e.runTurn(context.WithoutCancel(ctx), threadID, userMessage, history, credential)

	return userMessage.ID, nil
}

// DeleteMessage removes a confirmed message remotely, then locally. A message
// already absent from the local list is a no-op, not an error.
func (e *Engine) DeleteMessage(ctx context.Context, threadID, messageID string) error {
	if model.IsProvisionalID(messageID) {
		return ErrNotConfirmed
	}

	if err := e.messages.DeleteMessage(ctx, messageID); err != nil {
		return &PersistError{Err: err}
	}

	e.removeLocal(threadID, messageID)

	return nil
}

// ActiveThreadID returns the id of the currently loaded thread, or "".
func (e *Engine) ActiveThreadID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.threadID
}

// Messages returns a copy of the active thread's message list.
func (e *Engine) Messages() model.MessageList {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyMessages(e.list)
}

// Reset drops all local state unconditionally. In-flight turns keep their
// remote writes, but their effects are no longer rendered.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.threadID = ""
	e.list = nil
	e.mu.Unlock()
}

func (e *Engine) runTurn(ctx context.Context, threadID string, userMessage model.Message, history model.MessageList, credential string) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	defer func() {
		e.mu.Lock()
		delete(e.inflight, threadID)
		e.mu.Unlock()
	}()

	placeholder := model.Message{
		ID:        model.NewProvisionalID(),
		ThreadID:  threadID,
		Role:      model.RoleAssistant,
		Content:   model.PendingPlaceholderContent,
		CreatedAt: time.Now(),
		Pending:   true,
	}
	e.appendLocal(threadID, placeholder)

	// Persist the user message without delaying the completion call.
	persisted := make(chan error, 1)
	go func() {
		confirmed, err := e.messages.SaveMessage(ctx, &userMessage)
		if err == nil {
			e.reconcileLocal(ctx, threadID, userMessage.ID, *confirmed)
		}
		persisted <- err
	}()

	reply, completionErr := e.completer.Complete(ctx, credential, history)

	// A failed user-message persist aborts the turn: the placeholder goes,
	// the optimistic user message stays visible (provisional).
	if err := <-persisted; err != nil {
		e.removeLocal(threadID, placeholder.ID)
		e.failTurn(threadID, &PersistError{Err: err}, logger)
		return
	}

	if completionErr != nil {
		e.removeLocal(threadID, placeholder.ID)
		e.failTurn(threadID, &CompletionError{Err: completionErr}, logger)
		return
	}
	if strings.TrimSpace(reply) == "" {
		e.removeLocal(threadID, placeholder.ID)
		e.failTurn(threadID, &CompletionError{Err: errors.New("empty completion response")}, logger)
		return
	}

	assistant := model.Message{
		ThreadID:  threadID,
		Role:      model.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	confirmed, err := e.messages.SaveMessage(ctx, &assistant)
	if err != nil {
		e.removeLocal(threadID, placeholder.ID)
		e.failTurn(threadID, &PersistError{Err: err}, logger)
		return
	}

	// Replace in place so no duplicate assistant entry appears.
	e.reconcileLocal(ctx, threadID, placeholder.ID, *confirmed)

	if err := e.threads.TouchThread(ctx, threadID); err != nil {
		logger.Warn(fmt.Sprintf("failed to advance thread %s last_updated: %v", threadID, err))
	}
}

// appendLocal appends a message to threadID's list unless the caller has
// switched to another thread meanwhile.
func (e *Engine) appendLocal(threadID string, message model.Message) {
	e.mu.Lock()
	if e.threadID != threadID {
		e.mu.Unlock()
		return
	}
	e.list = append(e.list, message)
	snapshot := copyMessages(e.list)
	seq := e.stamp()
	e.mu.Unlock()

	e.notifyMessages(threadID, seq, snapshot)
}

// reconcileLocal replaces the provisional entry with its confirmed record,
// preserving list position. Reconciliation is keyed by thread id: a late
// completion for a thread that is no longer active is skipped silently. A
// genuine miss on the active thread is logged, never surfaced.
func (e *Engine) reconcileLocal(ctx context.Context, threadID, provisionalID string, confirmed model.Message) {
	e.mu.Lock()
	if e.threadID != threadID {
		e.mu.Unlock()
		return
	}
	ok := ReconcileMessage(e.list, provisionalID, confirmed)
	snapshot := copyMessages(e.list)
	seq := e.stamp()
	e.mu.Unlock()

	if !ok {
		logger := logger_lib.FromContext(ctx, config.KeyLogger)
		logger.Warn(fmt.Sprintf("reconciliation miss: provisional id %s is gone from thread %s", provisionalID, threadID))
		return
	}

	e.notifyMessages(threadID, seq, snapshot)
}

func (e *Engine) removeLocal(threadID, messageID string) {
	e.mu.Lock()
	if e.threadID != threadID {
		e.mu.Unlock()
		return
	}
	removed := false
	for i := range e.list {
		if e.list[i].ID == messageID {
			e.list = append(e.list[:i], e.list[i+1:]...)
			removed = true
			break
		}
	}
	snapshot := copyMessages(e.list)
	seq := e.stamp()
	e.mu.Unlock()

	if removed {
		e.notifyMessages(threadID, seq, snapshot)
	}
}

func (e *Engine) failTurn(threadID string, err error, logger logger_lib.LoggerInterface) {
	logger.Error(fmt.Sprintf("turn failed on thread %s: %v", threadID, err))
	if e.hooks.OnTurnError != nil {
		e.hooks.OnTurnError(threadID, err)
	}
}

// stamp orders list snapshots. Callers hold e.mu, so the stamp order is the
// mutation order even when racing goroutines publish.
func (e *Engine) stamp() uint64 {
	e.seq++
	return e.seq
}

// notifyMessages publishes a snapshot unless a newer snapshot of the same
// thread already went out, so observers never end on a stale list.
func (e *Engine) notifyMessages(threadID string, seq uint64, messages model.MessageList) {
	if e.hooks.OnMessages == nil {
		return
	}

	e.pubMu.Lock()
	defer e.pubMu.Unlock()

	if seq <= e.pubSeq[threadID] {
		return
	}
	e.pubSeq[threadID] = seq

	e.hooks.OnMessages(threadID, messages)
}

func copyMessages(list model.MessageList) model.MessageList {
	out := make(model.MessageList, len(list))
	copy(out, list)
	return out
}
