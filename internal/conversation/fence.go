package conversation

import (
	"fmt"
	"strings"

	"github.com/baalimago/bingjson/internal/models"
)

const codeFence = "```"

type codeBlock struct {
	// Before is the text up to the opening fence.
	Before string
	// Code is everything between the opening and closing fence.
	Code string
}

// firstCodeBlock finds the first fenced code block in text. Any text after
// its closing fence, other code blocks included, is not part of the result.
// An opening fence without a closing one is an error, not a partial block.
func firstCodeBlock(text string) (codeBlock, bool, error) {
	start := strings.Index(text, codeFence)
	if start == -1 {
		return codeBlock{}, false, nil
	}
	rest := text[start+len(codeFence):]
	end := strings.Index(rest, codeFence)
	if end == -1 {
		return codeBlock{}, false, fmt.Errorf("%w: code fence at byte %v is never closed", models.ErrMalformedUpstreamResponse, start)
	}
	return codeBlock{
		Before: text[:start],
		Code:   rest[:end],
	}, true, nil
}
