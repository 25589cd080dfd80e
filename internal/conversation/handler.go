package conversation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/baalimago/bingjson/internal/codec"
	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/reply"
	"github.com/baalimago/bingjson/internal/sanitize"
	"github.com/baalimago/bingjson/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Handler is a single invocation: one prompt, an optional context file, and
// exactly one JSON document as output.
type Handler struct {
	prompt string
	// contextPath is read once before and overwritten once after the request,
	// empty means no context.
	contextPath string
	// outPath optionally mirrors the output document to another file.
	outPath    string
	controller *Controller
	out        io.Writer
	debug      bool
}

type HandlerOpts struct {
	Prompt      string
	ContextPath string
	OutPath     string
	Sender      models.Sender
	// Progress is shown during remote calls, nil disables it.
	Progress func(label string) func()
}

func NewHandler(opts HandlerOpts) *Handler {
	return &Handler{
		prompt:      opts.Prompt,
		contextPath: opts.ContextPath,
		outPath:     opts.OutPath,
		controller:  NewController(opts.Sender, opts.Progress),
		out:         os.Stdout,
		debug:       misc.Truthy(os.Getenv("DEBUG")),
	}
}

func (h *Handler) Query(ctx context.Context) error {
	kind := Classify(h.prompt)
	if h.debug {
		ancli.PrintOK(fmt.Sprintf("prompt classified as: %v\n", kind))
	}
	if kind == Reset {
		return h.handleReset()
	}

	prior := models.AbsentContext()
	if h.contextPath != "" {
		var err error
		prior, err = reply.Load(h.contextPath)
		if err != nil {
			return fmt.Errorf("failed to load context: %w", err)
		}
	}

	msg, err := h.controller.Converse(ctx, h.prompt, prior)
	if err != nil {
		return err
	}
	msg.Text = sanitize.Text(msg.Text)

	doc, err := codec.Encode(models.MessageContext(msg))
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	return h.emit(doc)
}

// handleReset skips the remote service entirely. Whatever context existed is
// replaced by the restart marker.
func (h *Handler) handleReset() error {
	doc, err := codec.Encode(models.RestartContext())
	if err != nil {
		return fmt.Errorf("failed to render restart marker: %w", err)
	}
	return h.emit(doc)
}

// emit writes the out file, then the context file, then prints. A failed
// write of the out file leaves the context file untouched, nothing is printed
// unless every write succeeded.
func (h *Handler) emit(doc string) error {
	if h.outPath != "" {
		if err := utils.WriteDocument(h.outPath, doc); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	if h.contextPath != "" {
		if err := reply.Save(h.contextPath, doc); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(h.out, doc)
	if err != nil {
		return fmt.Errorf("failed to print response: %w", err)
	}
	return nil
}
