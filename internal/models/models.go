package models

import (
	"context"
	"errors"
)

var (
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrMalformedContext is returned when a context document is neither a
	// Message nor a RestartMarker, or when it couldn't be read.
	ErrMalformedContext = errors.New("malformed context")
	ErrRemoteCall       = errors.New("remote call failed")
	// ErrMalformedUpstreamResponse is returned when a response opens a code fence
	// without closing it.
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
)

type Querier interface {
	Query(ctx context.Context) error
}

// Sender is the remote conversational service. A nil prior starts a new
// conversation.
type Sender interface {
	SendMessage(ctx context.Context, prompt string, prior *Message) (Message, error)
}

// Message is the unit exchanged with the remote service and persisted as
// context. All fields are opaque strings, the continuity tokens must be kept
// byte for byte as received.
type Message struct {
	ID                     string `json:"id"`
	Text                   string `json:"text"`
	Author                 string `json:"author"`
	ConversationID         string `json:"conversationId"`
	ClientID               string `json:"clientId"`
	ConversationSignature  string `json:"conversationSignature"`
	ConversationExpiryTime string `json:"conversationExpiryTime"`
	InvocationID           string `json:"invocationId"`
}

const RestartMessage = "new conversation"

type RestartMarker struct {
	Msg string `json:"msg"`
}

func NewRestartMarker() RestartMarker {
	return RestartMarker{Msg: RestartMessage}
}

type ContextKind int

const (
	ContextAbsent ContextKind = iota
	ContextMessage
	ContextRestart
)

func (k ContextKind) String() string {
	switch k {
	case ContextMessage:
		return "message"
	case ContextRestart:
		return "restart"
	default:
		return "absent"
	}
}

// Context is the decoded persisted state. Kind selects which of Message or
// Restart is set.
type Context struct {
	Kind    ContextKind
	Message Message
	Restart RestartMarker
}

func AbsentContext() Context {
	return Context{Kind: ContextAbsent}
}

func MessageContext(m Message) Context {
	return Context{Kind: ContextMessage, Message: m}
}

func RestartContext() Context {
	return Context{Kind: ContextRestart, Restart: NewRestartMarker()}
}

// Prior returns the message to continue from, or nil if the context
// should start a fresh conversation. The remote service has no notion of
// the restart marker, so it's treated as absent.
func (c Context) Prior() *Message {
	if c.Kind != ContextMessage {
		return nil
	}
	m := c.Message
	return &m
}
