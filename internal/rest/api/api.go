package api

import "github.com/s21platform/assistant-service/internal/model"

type Error struct {
	Error string `json:"error"`
}

type EstablishSessionResponse struct {
	ActiveThreadId string `json:"active_thread_id"`
}

type GetThreadsResponse struct {
	Threads        model.ThreadList `json:"threads"`
	ActiveThreadId string           `json:"active_thread_id"`
}

type CreateThreadResponse struct {
	Thread *model.Thread `json:"thread"`
}

type DeleteThreadResponse struct {
	ActiveThreadId string `json:"active_thread_id"`
}

type GetThreadMessagesResponse struct {
	ThreadId string            `json:"thread_id"`
	Messages model.MessageList `json:"messages"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	ThreadId      string `json:"thread_id"`
	ProvisionalId string `json:"provisional_id"`
}

type GetConnectTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type GetSubscribeTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Channel   string `json:"channel"`
}
