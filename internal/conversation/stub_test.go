package conversation

import (
	"context"
	"errors"

	"github.com/baalimago/bingjson/internal/models"
)

type stubCall struct {
	prompt string
	prior  *models.Message
}

// stubSender answers with the scripted responses in order.
type stubSender struct {
	responses []models.Message
	errAt     int
	calls     []stubCall
}

func newStub(responses ...models.Message) *stubSender {
	return &stubSender{responses: responses, errAt: -1}
}

func (s *stubSender) SendMessage(ctx context.Context, prompt string, prior *models.Message) (models.Message, error) {
	idx := len(s.calls)
	s.calls = append(s.calls, stubCall{prompt: prompt, prior: prior})
	if idx == s.errAt {
		return models.Message{}, errors.Join(models.ErrRemoteCall, errors.New("stub failure"))
	}
	if idx >= len(s.responses) {
		return models.Message{}, errors.Join(models.ErrRemoteCall, errors.New("stub out of responses"))
	}
	return s.responses[idx], nil
}

func message(id, text string) models.Message {
	return models.Message{
		ID:                     id,
		Text:                   text,
		Author:                 "bot",
		ConversationID:         "conv-" + id,
		ClientID:               "client-" + id,
		ConversationSignature:  "sig-" + id,
		ConversationExpiryTime: "2023-03-08T21:19:07Z",
		InvocationID:           "inv-" + id,
	}
}
