package reply

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/baalimago/bingjson/internal/codec"
	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func debugEnabled() bool {
	return misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_REPLY_MODE"))
}

// Load the context file at path. A file which doesn't exist yet is the same
// as no context, any other read failure is a malformed context.
func Load(path string) (models.Context, error) {
	if debugEnabled() {
		ancli.PrintOK(fmt.Sprintf("reading context from '%v'\n", path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if debugEnabled() {
				ancli.PrintWarn(fmt.Sprintf("no previous context found at: '%v'\n", path))
			}
			return models.AbsentContext(), nil
		}
		return models.Context{}, fmt.Errorf("%w: failed to read context file: %w", models.ErrMalformedContext, err)
	}
	c, err := codec.Decode(b)
	if err != nil {
		return models.Context{}, fmt.Errorf("failed to decode context file '%v': %w", path, err)
	}
	if debugEnabled() {
		ancli.PrintOK(fmt.Sprintf("found context of kind: %v\n", c.Kind))
	}
	return c, nil
}

// Save overwrites the context file with the rendered document.
func Save(path, doc string) error {
	if debugEnabled() {
		ancli.PrintOK(fmt.Sprintf("saving context to: '%v', content (on new line):\n'%v'\n", path, doc))
	}
	if err := utils.WriteDocument(path, doc); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	return nil
}
