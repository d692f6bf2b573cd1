//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package conversation

import (
	"context"

	"github.com/s21platform/assistant-service/internal/model"
)

type MessageStore interface {
	GetThreadMessages(ctx context.Context, threadID string) (model.MessageList, error)
	SaveMessage(ctx context.Context, message *model.Message) (*model.Message, error)
	DeleteMessage(ctx context.Context, messageID string) error
	DeleteThreadMessages(ctx context.Context, threadID string) error
}

type ThreadStore interface {
	GetUserThreads(ctx context.Context, ownerID string) (model.ThreadList, error)
	CreateThread(ctx context.Context, ownerID, title string) (*model.Thread, error)
	DeleteThread(ctx context.Context, threadID string) error
	TouchThread(ctx context.Context, threadID string) error
}

type CompletionClient interface {
	Complete(ctx context.Context, credential string, history model.MessageList) (string, error)
}

type ChangeStream interface {
	ThreadChanges(ctx context.Context, ownerID string) (<-chan model.ThreadChange, func(), error)
}
