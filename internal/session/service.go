package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/conversation"
	"github.com/s21platform/assistant-service/internal/model"
)

var (
	ErrUserBlocked    = errors.New("user is blocked")
	ErrThreadNotFound = errors.New("thread not found")
)

// UserChannel is the push channel carrying a user's thread list updates.
func UserChannel(userID string) string {
	return fmt.Sprintf("user:%s:threads", userID)
}

// ThreadChannel is the push channel carrying a thread's message list updates.
func ThreadChannel(threadID string) string {
	return fmt.Sprintf("thread:%s:messages", threadID)
}

type messagesEvent struct {
	ThreadID string            `json:"thread_id"`
	Messages model.MessageList `json:"messages"`
	Error    string            `json:"error,omitempty"`
}

type threadsEvent struct {
	Threads model.ThreadList `json:"threads"`
}

// activeSession holds the in-memory conversation state of one user. All tabs
// of the same user share it; pushes fan the shared state out to each of them.
type activeSession struct {
	userID      string
	engine      *conversation.Engine
	watcher     *conversation.Watcher
	unsubscribe func()
}

func (a *activeSession) owns(threadID string) bool {
	for _, thread := range a.watcher.Threads() {
		if thread.ID == threadID {
			return true
		}
	}
	return false
}

// Service is the session gate. Every conversation operation is addressed to a
// user uuid; the gate establishes the session on first use and routes the call
// to that user's engine and watcher.
type Service struct {
	users     UserStore
	messages  conversation.MessageStore
	threads   conversation.ThreadStore
	completer conversation.CompletionClient
	stream    conversation.ChangeStream
	publisher Publisher

	mu           sync.Mutex
	sessions     map[string]*activeSession
	establishing map[string]*sync.Mutex
}

func New(users UserStore, messages conversation.MessageStore, threads conversation.ThreadStore,
	completer conversation.CompletionClient, stream conversation.ChangeStream, publisher Publisher) *Service {
	return &Service{
		users:     users,
		messages:  messages,
		threads:   threads,
		completer: completer,
		stream:    stream,
		publisher: publisher,
		sessions:  make(map[string]*activeSession),

		establishing: make(map[string]*sync.Mutex),
	}
}

// Establish makes sure the user has a live session and returns the active
// thread id. The user row and the first thread are created on first contact.
func (s *Service) Establish(ctx context.Context, userID string) (string, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return "", err
	}
	return sess.engine.ActiveThreadID(), nil
}

// Threads returns the user's thread list, newest activity first.
func (s *Service) Threads(ctx context.Context, userID string) (model.ThreadList, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sess.watcher.Threads(), nil
}

// CreateThread creates a thread with the default title and selects it.
func (s *Service) CreateThread(ctx context.Context, userID string) (*model.Thread, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := sess.watcher.CreateThread(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := sess.engine.LoadThread(ctx, created.ID); err != nil {
		return nil, err
	}

	return created, nil
}

// DeleteThread removes a thread and its messages. When the active thread is
// the one deleted, the session falls back to the next remaining thread, or to
// a fresh one when none remain. Returns the active thread id afterwards.
func (s *Service) DeleteThread(ctx context.Context, userID, threadID string) (string, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return "", err
	}

	if !sess.owns(threadID) {
		return "", ErrThreadNotFound
	}

	if err := sess.watcher.DeleteThread(ctx, threadID); err != nil {
		return "", err
	}

	if sess.engine.ActiveThreadID() != threadID {
		return sess.engine.ActiveThreadID(), nil
	}

	sess.engine.Reset()

	remaining := sess.watcher.Threads()
	if len(remaining) == 0 {
		created, err := sess.watcher.CreateThread(ctx, userID)
		if err != nil {
			return "", err
		}
		remaining = model.ThreadList{*created}
	}

	next := remaining[0]
	if _, err := sess.engine.LoadThread(ctx, next.ID); err != nil {
		return "", err
	}

	return next.ID, nil
}

// SelectThread makes the thread active and returns its messages.
func (s *Service) SelectThread(ctx context.Context, userID, threadID string) (model.MessageList, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !sess.owns(threadID) {
		return nil, ErrThreadNotFound
	}

	return sess.engine.LoadThread(ctx, threadID)
}

// SendMessage starts a conversation turn in the thread and returns the
// provisional id of the user message. The thread is selected first when it is
// not the active one.
func (s *Service) SendMessage(ctx context.Context, userID, threadID, content, credential string) (string, error) {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return "", err
	}

	if sess.engine.ActiveThreadID() != threadID {
		if !sess.owns(threadID) {
			return "", ErrThreadNotFound
		}
		if _, err := sess.engine.LoadThread(ctx, threadID); err != nil {
			return "", err
		}
	}

	return sess.engine.SendUserMessage(ctx, threadID, content, credential)
}

// DeleteMessage removes a confirmed message from the thread.
func (s *Service) DeleteMessage(ctx context.Context, userID, threadID, messageID string) error {
	sess, err := s.establish(ctx, userID)
	if err != nil {
		return err
	}

	if !sess.owns(threadID) {
		return ErrThreadNotFound
	}

	return sess.engine.DeleteMessage(ctx, threadID, messageID)
}

// Reset revokes the user's session: the change stream subscription is torn
// down and all in-memory conversation state is dropped. The next call
// establishes a fresh session.
func (s *Service) Reset(userID string) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if !ok {
		return
	}

	sess.watcher.Reset()
	sess.engine.Reset()
}

func (s *Service) establish(ctx context.Context, userID string) (*activeSession, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	gate, ok := s.establishing[userID]
	if !ok {
		gate = &sync.Mutex{}
		s.establishing[userID] = gate
	}
	s.mu.Unlock()

	// One establishment per user at a time. Establishment makes store
	// round-trips, so it must not hold the service-wide lock.
	gate.Lock()
	defer gate.Unlock()

	s.mu.Lock()
	if sess, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	// The session and its pushes and change stream subscription outlive the
	// request that established it. The session context is rebuilt from scratch
	// instead of derived from the request so request-scoped values, the
	// transaction executor in particular, cannot leak into it: a transaction
	// executor outliving its request would poison every later refresh, and a
	// rolled-back request transaction must not take the session's user and
	// thread rows with it.
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	sessCtx := context.WithValue(context.Background(), config.KeyLogger, logger)
	if metrics := ctx.Value(config.KeyMetrics); metrics != nil {
		sessCtx = context.WithValue(sessCtx, config.KeyMetrics, metrics)
	}

	user, err := s.users.GetUser(sessCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		user = &model.User{ID: userID, Status: model.UserStatusActive}
		if err := s.users.CreateUser(sessCtx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}
	if user.Status == model.UserStatusBlocked {
		return nil, ErrUserBlocked
	}

	sess := &activeSession{userID: userID}

	sess.engine = conversation.New(s.messages, s.threads, s.completer, conversation.Hooks{
		OnMessages: func(threadID string, messages model.MessageList) {
			s.publishMessages(sessCtx, logger, threadID, messages, "")
		},
		OnTurnError: func(threadID string, err error) {
			s.publishMessages(sessCtx, logger, threadID, sess.engine.Messages(), conversation.UserMessage(err))
		},
	})
	sess.watcher = conversation.NewWatcher(s.threads, s.messages, s.stream)

	unsubscribe, err := sess.watcher.Subscribe(sessCtx, userID, func(threads model.ThreadList) {
		s.publishThreads(sessCtx, logger, userID, threads)
	})
	if err != nil {
		return nil, err
	}
	sess.unsubscribe = unsubscribe

	// A refresh racing the subscription can replace the list at any moment,
	// so the active thread comes from a single snapshot or from the created
	// thread itself, never from re-reading the list.
	activeID := ""
	if threads := sess.watcher.Threads(); len(threads) > 0 {
		activeID = threads[0].ID
	} else {
		created, err := sess.watcher.CreateThread(sessCtx, userID)
		if err != nil {
			unsubscribe()
			return nil, err
		}
		activeID = created.ID
	}

	if _, err := sess.engine.LoadThread(sessCtx, activeID); err != nil {
		unsubscribe()
		return nil, err
	}

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *Service) publishMessages(ctx context.Context, logger logger_lib.LoggerInterface, threadID string, messages model.MessageList, failure string) {
	event := messagesEvent{ThreadID: threadID, Messages: messages, Error: failure}
	if err := s.publisher.Publish(ctx, ThreadChannel(threadID), event); err != nil {
		logger.Warn(fmt.Sprintf("failed to push message update for thread %s: %v", threadID, err))
	}
}

func (s *Service) publishThreads(ctx context.Context, logger logger_lib.LoggerInterface, userID string, threads model.ThreadList) {
	if err := s.publisher.Publish(ctx, UserChannel(userID), threadsEvent{Threads: threads}); err != nil {
		logger.Warn(fmt.Sprintf("failed to push thread list update for user %s: %v", userID, err))
	}
}
