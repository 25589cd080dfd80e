package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/baalimago/bingjson/internal/models"
	"github.com/tidwall/gjson"
)

// continuityFields must all be present for a document to be a Message. Text
// is allowed to be missing, an empty answer is still a valid continuation.
var continuityFields = []string{
	"id",
	"author",
	"conversationId",
	"clientId",
	"conversationSignature",
	"conversationExpiryTime",
	"invocationId",
}

// Decode the persisted context. Empty input means no context was supplied.
// The variant is picked by shape: a lone 'msg' key is a restart marker, the
// seven continuity fields make a Message, anything else is malformed.
func Decode(raw []byte) (models.Context, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.AbsentContext(), nil
	}
	if !gjson.ValidBytes(raw) {
		return models.Context{}, fmt.Errorf("%w: not valid JSON", models.ErrMalformedContext)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return models.Context{}, fmt.Errorf("%w: expected JSON object, got: %v", models.ErrMalformedContext, doc.Type)
	}

	if doc.Get("msg").Exists() {
		var present []string
		for _, f := range continuityFields {
			if doc.Get(f).Exists() {
				present = append(present, f)
			}
		}
		if len(present) > 0 {
			return models.Context{}, fmt.Errorf("%w: restart marker mixed with message fields: %v", models.ErrMalformedContext, strings.Join(present, ", "))
		}
		return models.RestartContext(), nil
	}

	if err := RequireMessageFields(doc); err != nil {
		return models.Context{}, fmt.Errorf("%w: %w", models.ErrMalformedContext, err)
	}
	msg, err := MessageFromResult(doc)
	if err != nil {
		return models.Context{}, fmt.Errorf("%w: %w", models.ErrMalformedContext, err)
	}
	return models.MessageContext(msg), nil
}

// RequireMessageFields checks that every continuity field is present in doc.
// The tokens travel as one unit, a partial set can't continue a conversation.
func RequireMessageFields(doc gjson.Result) error {
	var missing []string
	for _, f := range continuityFields {
		if !doc.Get(f).Exists() {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %v", strings.Join(missing, ", "))
	}
	return nil
}

// MessageFromResult extracts the eight message fields from a parsed JSON
// object. Fields which are absent are left empty, use RequireMessageFields
// first when the continuity tokens must be there.
func MessageFromResult(doc gjson.Result) (models.Message, error) {
	var m models.Message
	targets := []struct {
		key string
		dst *string
	}{
		{"id", &m.ID},
		{"text", &m.Text},
		{"author", &m.Author},
		{"conversationId", &m.ConversationID},
		{"clientId", &m.ClientID},
		{"conversationSignature", &m.ConversationSignature},
		{"conversationExpiryTime", &m.ConversationExpiryTime},
		{"invocationId", &m.InvocationID},
	}
	for _, t := range targets {
		v, err := tokenValue(doc.Get(t.key))
		if err != nil {
			return models.Message{}, fmt.Errorf("field '%v': %w", t.key, err)
		}
		*t.dst = v
	}
	return m, nil
}

// tokenValue returns strings unquoted and any other scalar as its raw JSON
// text, so numeric expiry times survive without float formatting.
func tokenValue(r gjson.Result) (string, error) {
	switch r.Type {
	case gjson.String:
		return r.Str, nil
	case gjson.Null:
		return "", nil
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw, nil
	default:
		return "", fmt.Errorf("expected scalar value, got: %v", r.Raw)
	}
}
