package bridge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/baalimago/bingjson/internal/models"
)

// Echo answers with the prompt itself. Continuity tokens are carried over from
// the prior message, with the invocation counter bumped, so it behaves like a
// conversation without any network.
type Echo struct {
	// Calls records the prompts and whether a prior message was passed along.
	Calls []EchoCall
}

type EchoCall struct {
	Prompt   string
	HadPrior bool
}

func (e *Echo) SendMessage(ctx context.Context, prompt string, prior *models.Message) (models.Message, error) {
	if err := ctx.Err(); err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", models.ErrRemoteCall, err)
	}
	e.Calls = append(e.Calls, EchoCall{Prompt: prompt, HadPrior: prior != nil})
	msg := models.Message{
		Text:                   prompt,
		Author:                 "bot",
		ConversationID:         "test-conversation",
		ClientID:               "test-client",
		ConversationSignature:  "test-signature",
		ConversationExpiryTime: "2100-01-01T00:00:00Z",
		InvocationID:           "0",
	}
	if prior != nil {
		msg.ConversationID = prior.ConversationID
		msg.ClientID = prior.ClientID
		msg.ConversationSignature = prior.ConversationSignature
		msg.ConversationExpiryTime = prior.ConversationExpiryTime
		msg.InvocationID = nextInvocation(prior.InvocationID)
	}
	msg.ID = fmt.Sprintf("test-%v", msg.InvocationID)
	return msg, nil
}

func nextInvocation(prev string) string {
	n, err := strconv.Atoi(prev)
	if err != nil {
		return "0"
	}
	return strconv.Itoa(n + 1)
}
