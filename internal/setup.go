package internal

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/bingjson/internal/bridge"
	"github.com/baalimago/bingjson/internal/conversation"
	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const (
	BackendBridge = "bridge"
	BackendTest   = "test"
)

// Setup parses args into a querier for a single prompt. The positional
// arguments are the prompt, optionally followed by the context file.
func Setup(usage string, args []string) (models.Querier, error) {
	flagSet, positional, err := parseFlags(defaultFlags, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stderr, usage)
			return nil, utils.ErrUserInitiatedExit
		}
		return nil, err
	}
	if flagSet.Version {
		return nil, printVersion(os.Stderr)
	}
	if len(positional) < 1 || len(positional) > 2 {
		return nil, fmt.Errorf("%w: expected <prompt> [contextFile], got %v arguments", models.ErrInvalidArguments, len(positional))
	}

	err = utils.LoadEnv(flagSet.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	sender, err := setupSender(flagSet.Backend)
	if err != nil {
		return nil, err
	}

	opts := conversation.HandlerOpts{
		Prompt:  positional[0],
		OutPath: flagSet.OutPath,
		Sender:  sender,
	}
	if len(positional) == 2 {
		opts.ContextPath = positional[1]
	}
	if !flagSet.PrintRaw {
		opts.Progress = utils.StartAnimation
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("flags: %v\n", debug.IndentedJsonFmt(flagSet)))
	}
	return conversation.NewHandler(opts), nil
}

func setupSender(backend string) (models.Sender, error) {
	switch backend {
	case BackendBridge:
		conf, err := utils.ConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return bridge.NewHTTPSender(conf), nil
	case BackendTest:
		return &bridge.Echo{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend: '%v'", models.ErrInvalidArguments, backend)
	}
}
