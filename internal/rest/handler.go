package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/conversation"
	"github.com/s21platform/assistant-service/internal/pkg/tx"
	api "github.com/s21platform/assistant-service/internal/rest/api"
	"github.com/s21platform/assistant-service/internal/session"
)

// CompletionKeyHeader carries the caller's completion API key. It is used for
// the single request and never stored.
const CompletionKeyHeader = "X-Openai-Api-Key"

type Handler struct {
	gate         SessionGate
	validator    Validator
	jwtGenerator JWTGenerator
}

func New(gate SessionGate, validator Validator, jwtGenerator JWTGenerator) *Handler {
	return &Handler{
		gate:         gate,
		validator:    validator,
		jwtGenerator: jwtGenerator,
	}
}

func RegisterRoutes(router chi.Router, handler *Handler) {
	router.Post("/api/session", handler.EstablishSession)
	router.Post("/api/session/reset", handler.ResetSession)
	router.Get("/api/threads", handler.GetThreads)
	router.Post("/api/threads", handler.CreateThread)
	router.Delete("/api/threads/{threadID}", handler.DeleteThread)
	router.Get("/api/threads/{threadID}/messages", handler.GetThreadMessages)
	router.Post("/api/threads/{threadID}/messages", handler.SendMessage)
	router.Delete("/api/threads/{threadID}/messages/{messageID}", handler.DeleteMessage)
	router.Get("/api/threads/{threadID}/subscribe-token", handler.GetThreadSubscribeToken)
	router.Get("/api/centrifugo/connect-token", handler.GetConnectToken)
	router.Get("/api/centrifugo/threads-subscribe-token", handler.GetThreadsSubscribeToken)
}

func (h *Handler) EstablishSession(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("EstablishSession")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	activeThreadID, err := h.gate.Establish(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to establish session: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	h.writeJSON(w, api.EstablishSessionResponse{ActiveThreadId: activeThreadID}, http.StatusOK)
}

func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("ResetSession")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	h.gate.Reset(userUUID)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetThreads")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	activeThreadID, err := h.gate.Establish(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to establish session: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	threads, err := h.gate.Threads(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get threads: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	h.writeJSON(w, api.GetThreadsResponse{Threads: threads, ActiveThreadId: activeThreadID}, http.StatusOK)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("CreateThread")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	thread, err := h.gate.CreateThread(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create thread: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	h.writeJSON(w, api.CreateThreadResponse{Thread: thread}, http.StatusCreated)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteThread")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	threadID := chi.URLParam(r, "threadID")

	var activeThreadID string
	err := tx.TxExecute(r.Context(), func(ctx context.Context) error {
		var err error
		activeThreadID, err = h.gate.DeleteThread(ctx, userUUID, threadID)
		return err
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to delete thread: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	h.writeJSON(w, api.DeleteThreadResponse{ActiveThreadId: activeThreadID}, http.StatusOK)
}

func (h *Handler) GetThreadMessages(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetThreadMessages")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	threadID := chi.URLParam(r, "threadID")

	messages, err := h.gate.SelectThread(r.Context(), userUUID, threadID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get thread messages: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	h.writeJSON(w, api.GetThreadMessagesResponse{ThreadId: threadID, Messages: messages}, http.StatusOK)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	var req api.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	if err := h.validator.ValidateSendMessage(&req); err != nil {
		logger.Error(fmt.Sprintf("message validation failed: %v", err))
		h.writeError(w, fmt.Sprintf("message validation failed: %v", err), http.StatusBadRequest)
		return
	}

	credential := r.Header.Get(CompletionKeyHeader)
	if credential == "" {
		logger.Error("completion API key header is missing")
		h.writeError(w, "completion API key is required", http.StatusBadRequest)
		return
	}

	threadID := chi.URLParam(r, "threadID")

	provisionalID, err := h.gate.SendMessage(r.Context(), userUUID, threadID, req.Content, credential)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to send message: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	// The turn is still running: the confirmed ids and the assistant reply
	// arrive over the push channel.
	h.writeJSON(w, api.SendMessageResponse{ThreadId: threadID, ProvisionalId: provisionalID}, http.StatusAccepted)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteMessage")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	threadID := chi.URLParam(r, "threadID")
	messageID := chi.URLParam(r, "messageID")

	if err := h.gate.DeleteMessage(r.Context(), userUUID, threadID, messageID); err != nil {
		logger.Error(fmt.Sprintf("failed to delete message: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetConnectToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConnectToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateConnectToken(userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate connect token: %v", err))
		h.writeError(w, "failed to generate connect token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, api.GetConnectTokenResponse{Token: token, ExpiresAt: expiresAt}, http.StatusOK)
}

func (h *Handler) GetThreadSubscribeToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetThreadSubscribeToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	threadID := chi.URLParam(r, "threadID")

	threads, err := h.gate.Threads(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get threads: %v", err))
		h.writeError(w, conversation.UserMessage(err), statusForError(err))
		return
	}

	owned := false
	for _, thread := range threads {
		if thread.ID == threadID {
			owned = true
			break
		}
	}
	if !owned {
		logger.Error("thread does not belong to the user")
		h.writeError(w, "thread not found", http.StatusNotFound)
		return
	}

	channel := session.ThreadChannel(threadID)
	token, expiresAt, err := h.jwtGenerator.GenerateSubscribeToken(userUUID, channel)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate subscribe token: %v", err))
		h.writeError(w, "failed to generate subscribe token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, api.GetSubscribeTokenResponse{Token: token, ExpiresAt: expiresAt, Channel: channel}, http.StatusOK)
}

func (h *Handler) GetThreadsSubscribeToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetThreadsSubscribeToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	channel := session.UserChannel(userUUID)
	token, expiresAt, err := h.jwtGenerator.GenerateSubscribeToken(userUUID, channel)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate subscribe token: %v", err))
		h.writeError(w, "failed to generate subscribe token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, api.GetSubscribeTokenResponse{Token: token, ExpiresAt: expiresAt, Channel: channel}, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrUserBlocked):
		return http.StatusForbidden
	case errors.Is(err, session.ErrThreadNotFound):
		return http.StatusNotFound
	case errors.Is(err, conversation.ErrBlankMessage):
		return http.StatusBadRequest
	case errors.Is(err, conversation.ErrSendInFlight), errors.Is(err, conversation.ErrNotConfirmed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Error: message})
}
