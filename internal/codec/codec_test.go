package codec

import (
	"errors"
	"testing"

	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func fullMessage() models.Message {
	return models.Message{
		ID:                     "a1b2-c3",
		Text:                   "Hola, soy Bing",
		Author:                 "bot",
		ConversationID:         "51D|BingProd|3A2F",
		ClientID:               "914798353720712",
		ConversationSignature:  "Kx9/+abc==",
		ConversationExpiryTime: "2023-03-08T21:19:07.6789202Z",
		InvocationID:           "2",
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  models.Message
	}{
		{name: "typical", msg: fullMessage()},
		{name: "empty", msg: models.Message{}},
		{
			name: "tokens with characters which need escaping",
			msg: models.Message{
				ID:                     `"quoted"`,
				Text:                   "line\nbreak \\ <tag> & ñ 🚀",
				Author:                 "bot",
				ConversationID:         "tab\there",
				ClientID:               " ",
				ConversationSignature:  "+/=",
				ConversationExpiryTime: "1678310347",
				InvocationID:           "0",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Render(tc.msg)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			got, err := Decode([]byte(doc))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Kind != models.ContextMessage {
				t.Fatalf("expected message context, got: %v", got.Kind)
			}
			if diff := cmp.Diff(tc.msg, got.Message); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%v", diff)
			}
		})
	}
}

func TestEncodeDecodeRestart(t *testing.T) {
	doc, err := Encode(models.RestartContext())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Kind, models.ContextRestart)
}

func TestEncodeRestart_matchesRenderRestart(t *testing.T) {
	got, err := Encode(models.RestartContext())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want, err := RenderRestart()
	if err != nil {
		t.Fatalf("RenderRestart: %v", err)
	}
	testboil.FailTestIfDiff(t, got, want)
}

func TestRequireMessageFields(t *testing.T) {
	full := `{"id":"1","author":"bot","conversationId":"c","clientId":"cl","conversationSignature":"s","conversationExpiryTime":"e","invocationId":"0"}`
	if err := RequireMessageFields(gjson.Parse(full)); err != nil {
		t.Fatalf("expected complete message to pass, got: %v", err)
	}
	err := RequireMessageFields(gjson.Parse(`{"text":"hola","id":"1"}`))
	if err == nil {
		t.Fatal("expected error for partial message")
	}
	testboil.AssertStringContains(t, err.Error(), "invocationId")
}

func TestEncodeAbsent(t *testing.T) {
	if _, err := Encode(models.AbsentContext()); err == nil {
		t.Fatal("expected error when encoding absent context")
	}
}

func TestRender(t *testing.T) {
	m := fullMessage()
	m.Text = "He said hi and smiled"
	got, err := Render(m)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "{\n" +
		"\t\"id\": \"a1b2-c3\",\n" +
		"\t\"text\": \"He said hi and smiled\",\n" +
		"\t\"author\": \"bot\",\n" +
		"\t\"conversationId\": \"51D|BingProd|3A2F\",\n" +
		"\t\"clientId\": \"914798353720712\",\n" +
		"\t\"conversationSignature\": \"Kx9/+abc==\",\n" +
		"\t\"conversationExpiryTime\": \"2023-03-08T21:19:07.6789202Z\",\n" +
		"\t\"invocationId\": \"2\"\n" +
		"}"
	testboil.FailTestIfDiff(t, got, want)
}

func TestRender_noHTMLEscaping(t *testing.T) {
	got, err := Render(models.Message{Text: "a < b && c > d"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	testboil.AssertStringContains(t, got, `"text": "a < b && c > d"`)
}

func TestRenderRestart(t *testing.T) {
	got, err := RenderRestart()
	if err != nil {
		t.Fatalf("RenderRestart: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "{\n\t\"msg\": \"new conversation\"\n}")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		wantKind models.ContextKind
		wantErr  error
	}{
		{name: "empty input is absent", given: "", wantKind: models.ContextAbsent},
		{name: "whitespace is absent", given: " \n\t", wantKind: models.ContextAbsent},
		{name: "compact restart marker", given: `{"msg":"new conversation"}`, wantKind: models.ContextRestart},
		{name: "spaced restart marker", given: `{"msg": "new conversation"}`, wantKind: models.ContextRestart},
		{
			name:     "message without text",
			given:    `{"id":"1","author":"bot","conversationId":"c","clientId":"cl","conversationSignature":"s","conversationExpiryTime":"t","invocationId":"0"}`,
			wantKind: models.ContextMessage,
		},
		{name: "invalid json", given: `{"msg": `, wantErr: models.ErrMalformedContext},
		{name: "array", given: `[1,2]`, wantErr: models.ErrMalformedContext},
		{name: "bare string", given: `"new conversation"`, wantErr: models.ErrMalformedContext},
		{name: "unknown shape", given: `{"foo":"bar"}`, wantErr: models.ErrMalformedContext},
		{name: "partial message", given: `{"id":"1","text":"hi","conversationId":"c"}`, wantErr: models.ErrMalformedContext},
		{
			name:    "restart mixed with message fields",
			given:   `{"msg":"new conversation","conversationId":"c"}`,
			wantErr: models.ErrMalformedContext,
		},
		{
			name:    "nested object as token",
			given:   `{"id":{"a":1},"author":"bot","conversationId":"c","clientId":"cl","conversationSignature":"s","conversationExpiryTime":"t","invocationId":"0"}`,
			wantErr: models.ErrMalformedContext,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.given))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error: %v, got: %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got.Kind, tc.wantKind)
		})
	}
}

func TestDecode_numericTokensKeepRawText(t *testing.T) {
	given := `{"id":"1","text":"hi","author":"bot","conversationId":"c","clientId":123456789012345678,` +
		`"conversationSignature":"s","conversationExpiryTime":1.6783103e12,"invocationId":3}`
	got, err := Decode([]byte(given))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Message.ClientID, "123456789012345678")
	testboil.FailTestIfDiff(t, got.Message.ConversationExpiryTime, "1.6783103e12")
	testboil.FailTestIfDiff(t, got.Message.InvocationID, "3")
}
