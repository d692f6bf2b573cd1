package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/s21platform/assistant-service/internal/config"
	"github.com/s21platform/assistant-service/internal/model"
)

// Client produces assistant completions. The API key is supplied per request
// and never stored: every user talks to the completion provider on their own
// credential.
type Client struct {
	baseURL     string
	model       string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.OpenAI.BaseURL,
		model:       cfg.OpenAI.Model,
		temperature: cfg.OpenAI.Temperature,
		maxTokens:   cfg.OpenAI.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.OpenAI.Timeout,
		},
	}
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) Complete(ctx context.Context, credential string, history model.MessageList) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", fmt.Errorf("completion credential is empty")
	}

	clientConfig := openai.DefaultConfig(credential)
	clientConfig.BaseURL = c.baseURL
	clientConfig.HTTPClient = c.httpClient

	client := openai.NewClientWithConfig(clientConfig)

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, message := range history {
		if message.Pending {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
