//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package user

import (
	"context"

	"github.com/s21platform/assistant-service/internal/model"
)

type DBRepo interface {
	UpdateUserStatus(ctx context.Context, userID string, status model.UserStatus) error
	DeleteUserData(ctx context.Context, userID string) error
}

type SessionGate interface {
	Reset(userID string)
}
