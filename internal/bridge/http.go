package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/baalimago/bingjson/internal/codec"
	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// HTTPSender sends messages through a sendMessage bridge: an endpoint which
// accepts the prompt plus the previous message and answers with the next
// message of the conversation.
type HTTPSender struct {
	url    string
	cookie string
	client *http.Client
	debug  bool
}

type request struct {
	Prompt  string          `json:"prompt"`
	Context *models.Message `json:"context,omitempty"`
}

func NewHTTPSender(conf utils.Config) *HTTPSender {
	return &HTTPSender{
		url:    conf.BridgeURL,
		cookie: conf.Cookie,
		client: &http.Client{Timeout: conf.Timeout},
		debug:  misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_BRIDGE")),
	}
}

func (s *HTTPSender) SendMessage(ctx context.Context, prompt string, prior *models.Message) (models.Message, error) {
	req, err := s.createRequest(ctx, prompt, prior)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: failed to execute request: %w", models.ErrRemoteCall, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: failed to read response body: %w", models.ErrRemoteCall, err)
	}
	if res.StatusCode != http.StatusOK {
		return models.Message{}, fmt.Errorf("%w: unexpected status code: %v, body: %v", models.ErrRemoteCall, res.Status, string(body))
	}
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("bridge response: %v\n", string(body)))
	}
	return decodeResponse(body)
}

func (s *HTTPSender) createRequest(ctx context.Context, prompt string, prior *models.Message) (*http.Request, error) {
	reqData := request{
		Prompt:  prompt,
		Context: prior,
	}
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("bridge request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", s.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if s.cookie != "" {
		req.Header.Set("Cookie", cookieHeader(s.cookie))
	}
	return req, nil
}

// cookieHeader accepts both the bare '_U' value and a complete cookie string.
func cookieHeader(cookie string) string {
	if strings.Contains(cookie, "=") {
		return cookie
	}
	return "_U=" + cookie
}

func decodeResponse(body []byte) (models.Message, error) {
	if !gjson.ValidBytes(body) {
		return models.Message{}, fmt.Errorf("%w: response is not valid JSON: %v", models.ErrRemoteCall, string(body))
	}
	doc := gjson.ParseBytes(body)
	if e := doc.Get("error"); e.Exists() {
		return models.Message{}, fmt.Errorf("%w: bridge error: %v", models.ErrRemoteCall, e.String())
	}
	if !doc.IsObject() {
		return models.Message{}, fmt.Errorf("%w: expected JSON object, got: %v", models.ErrRemoteCall, doc.Type)
	}
	if err := codec.RequireMessageFields(doc); err != nil {
		return models.Message{}, fmt.Errorf("%w: incomplete message: %w", models.ErrRemoteCall, err)
	}
	msg, err := codec.MessageFromResult(doc)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: failed to decode message: %w", models.ErrRemoteCall, err)
	}
	return msg, nil
}
