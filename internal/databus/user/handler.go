package user

import (
	"context"
	"encoding/json"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

// UserEventMessage is the payload of user management events from the admin
// platform: status changes and account deletions.
type UserEventMessage struct {
	UserUUID  string `json:"user_uuid"`
	Status    string `json:"status,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}

type Handler struct {
	repository DBRepo
	gate       SessionGate
}

func New(repo DBRepo, gate SessionGate) *Handler {
	return &Handler{
		repository: repo,
		gate:       gate,
	}
}

// Handler applies one user management event. A deletion removes the user's
// data and revokes the live session; a status change updates the local row
// and revokes the session when the user is no longer allowed in. Malformed
// events are logged and skipped; store failures are returned so the message
// is retried instead of committed.
func (h *Handler) Handler(ctx context.Context, message []byte) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("UserEventHandler")

	var event UserEventMessage
	if err := json.Unmarshal(message, &event); err != nil {
		logger.Error(fmt.Sprintf("failed to unmarshal user event: %v", err))
		return nil
	}

	if event.UserUUID == "" {
		logger.Error("user event without user uuid")
		return nil
	}

	if event.IsDeleted {
		h.gate.Reset(event.UserUUID)
		if err := h.repository.DeleteUserData(ctx, event.UserUUID); err != nil {
			logger.Error(fmt.Sprintf("failed to delete user data for %s: %v", event.UserUUID, err))
			return err
		}
		return nil
	}

	status, err := model.ParseUserStatus(event.Status)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to parse user event: %v", err))
		return nil
	}

	if err := h.repository.UpdateUserStatus(ctx, event.UserUUID, status); err != nil {
		logger.Error(fmt.Sprintf("failed to update status for %s: %v", event.UserUUID, err))
		return err
	}

	if status == model.UserStatusBlocked {
		h.gate.Reset(event.UserUUID)
	}

	return nil
}
