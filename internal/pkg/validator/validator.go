package validator

import (
	"fmt"
	"strings"

	api "github.com/s21platform/assistant-service/internal/rest/api"
)

const maxMessageLength = 4000

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateSendMessage(req *api.SendMessageRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}

	if len([]rune(req.Content)) > maxMessageLength {
		return fmt.Errorf("content exceeds maximum length of %d characters", maxMessageLength)
	}

	return nil
}
