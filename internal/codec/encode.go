package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/baalimago/bingjson/internal/models"
)

// Encode the context into its persisted document.
func Encode(c models.Context) (string, error) {
	switch c.Kind {
	case models.ContextMessage:
		return Render(c.Message)
	case models.ContextRestart:
		return marshal(c.Restart)
	default:
		return "", errors.New("can't encode absent context")
	}
}

// Render the message with the keys in fixed order, every value a string and
// tab indentation. The same document is printed and persisted.
func Render(m models.Message) (string, error) {
	return marshal(m)
}

// RenderRestart renders the restart marker, {"msg": "new conversation"}.
func RenderRestart() (string, error) {
	return marshal(models.NewRestartMarker())
}

func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Consumers read the text verbatim, so '<', '>' and '&' stay as they are.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
