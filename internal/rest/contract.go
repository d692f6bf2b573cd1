//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/s21platform/assistant-service/internal/model"
	api "github.com/s21platform/assistant-service/internal/rest/api"
)

type SessionGate interface {
	Establish(ctx context.Context, userID string) (string, error)
	Threads(ctx context.Context, userID string) (model.ThreadList, error)
	CreateThread(ctx context.Context, userID string) (*model.Thread, error)
	DeleteThread(ctx context.Context, userID, threadID string) (string, error)
	SelectThread(ctx context.Context, userID, threadID string) (model.MessageList, error)
	SendMessage(ctx context.Context, userID, threadID, content, credential string) (string, error)
	DeleteMessage(ctx context.Context, userID, threadID, messageID string) error
	Reset(userID string)
}

type Validator interface {
	ValidateSendMessage(req *api.SendMessageRequest) error
}

type JWTGenerator interface {
	GenerateConnectToken(userID string) (string, int64, error)
	GenerateSubscribeToken(userID, channel string) (string, int64, error)
}
