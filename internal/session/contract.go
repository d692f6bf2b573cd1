package session

//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
//go:generate mockgen -destination=mock_core_test.go -package=${GOPACKAGE} github.com/s21platform/assistant-service/internal/conversation MessageStore,ThreadStore,CompletionClient,ChangeStream

import (
	"context"

	"github.com/s21platform/assistant-service/internal/model"
)

type UserStore interface {
	// GetUser returns (nil, nil) when no row exists for the uuid yet.
	GetUser(ctx context.Context, userID string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

type Publisher interface {
	Publish(ctx context.Context, channel string, data interface{}) error
}
