package conversation

import (
	"context"
	"fmt"

	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
)

// explainPrompt is sent together with the code of a response, the answer
// replaces the code block.
const explainPrompt = "¿Puedes explicar con palabras lo que hace este código sin mostrar más código? Responde únicamente la explicación del código, no me saludes."

// Controller runs the request cycle against the remote service: one primary
// request, and one explanation request if the answer contains code.
type Controller struct {
	sender models.Sender
	// progress is started before each remote call and stopped after it.
	progress func(label string) func()
}

func NewController(sender models.Sender, progress func(label string) func()) *Controller {
	if progress == nil {
		progress = func(string) func() { return func() {} }
	}
	return &Controller{
		sender:   sender,
		progress: progress,
	}
}

// Converse sends the prompt, continuing from prior if it holds a message. If the
// answer contains a code block, the code is swapped for an explanation. The
// merged message carries the explanation's ids and tokens, as it's the latest
// message in the exchange.
func (c *Controller) Converse(ctx context.Context, prompt string, prior models.Context) (models.Message, error) {
	res, err := c.send(ctx, prompt, prior.Prior())
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to send prompt: %w", err)
	}

	block, found, err := firstCodeBlock(res.Text)
	if err != nil {
		return models.Message{}, err
	}
	if !found {
		return res, nil
	}

	// The explanation is a throwaway exchange, never chained to the prior conversation
	explanation, err := c.send(ctx, explainPrompt+"\n"+block.Code, nil)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to request code explanation: %w", err)
	}
	merged := explanation
	merged.Text = block.Before + explanation.Text
	return merged, nil
}

func (c *Controller) send(ctx context.Context, prompt string, prior *models.Message) (models.Message, error) {
	stop := c.progress(utils.ShortLabel(prompt, 8))
	defer stop()
	return c.sender.SendMessage(ctx, prompt, prior)
}
