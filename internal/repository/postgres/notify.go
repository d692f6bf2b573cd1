package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

const (
	threadChangesChannel = "thread_changes"

	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute

	subscriberBuffer = 16
)

type notifyPayload struct {
	Op       string `json:"op"`
	ThreadID string `json:"thread_id"`
	OwnerID  string `json:"owner_id"`
}

type subscriber struct {
	ownerID string
	events  chan model.ThreadChange
}

// ChangeStream delivers thread change events produced by database triggers
// over LISTEN/NOTIFY. Delivery is at-least-once and unordered: consumers are
// expected to re-fetch state on every event rather than apply deltas.
type ChangeStream struct {
	listener *pq.Listener
	logger   logger_lib.LoggerInterface

	mu     sync.Mutex
	subs   map[int]subscriber
	nextID int
}

func NewChangeStream(cfg *config.Config, logger logger_lib.LoggerInterface) (*ChangeStream, error) {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	listener := pq.NewListener(conStr, minReconnectInterval, maxReconnectInterval, nil)
	if err := listener.Listen(threadChangesChannel); err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %v", threadChangesChannel, err)
	}

	s := &ChangeStream{
		listener: listener,
		logger:   logger,
		subs:     make(map[int]subscriber),
	}

	go s.run()

	return s, nil
}

func (s *ChangeStream) Close() {
	_ = s.listener.Close()
}

// ThreadChanges subscribes to change events for one owner's threads. The
// returned stop function ends the subscription and closes the channel.
func (s *ChangeStream) ThreadChanges(_ context.Context, ownerID string) (<-chan model.ThreadChange, func(), error) {
	events := make(chan model.ThreadChange, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = subscriber{ownerID: ownerID, events: events}
	s.mu.Unlock()

	stop := func() {
		s.mu.Lock()
		sub, ok := s.subs[id]
		delete(s.subs, id)
		s.mu.Unlock()

		if ok {
			close(sub.events)
		}
	}

	return events, stop, nil
}

func (s *ChangeStream) run() {
	for notification := range s.listener.Notify {
		if notification == nil {
			// The connection was re-established. Notifications sent while it
			// was down are lost, so push a synthetic event to every
			// subscriber to force a re-fetch.
			s.dispatch(model.ThreadChange{Op: model.ChangeOpUpdate})
			continue
		}

		var payload notifyPayload
		if err := json.Unmarshal([]byte(notification.Extra), &payload); err != nil {
			s.logger.Warn(fmt.Sprintf("skipping malformed notification payload: %v", err))
			continue
		}

		op, err := model.ParseChangeOp(payload.Op)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("skipping notification: %v", err))
			continue
		}

		s.dispatch(model.ThreadChange{Op: op, ThreadID: payload.ThreadID, OwnerID: payload.OwnerID})
	}
}

// dispatch delivers the event to subscribers of the owner; an event with no
// owner goes to everyone. A subscriber that is not keeping up is skipped.
func (s *ChangeStream) dispatch(event model.ThreadChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if event.OwnerID != "" && sub.ownerID != event.OwnerID {
			continue
		}
		select {
		case sub.events <- event:
		default:
			s.logger.Warn(fmt.Sprintf("subscriber for user %s is lagging, dropping event", sub.ownerID))
		}
	}
}
