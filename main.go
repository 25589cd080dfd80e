package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/bingjson/internal"
	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
)

const usage = `bingjson - send a prompt to Bing chat, get JSON back

Prerequisites:
  - Set the BING_COOKIE environment variable to your Bing '_U' cookie (or put it in a .env file)
  - Run a sendMessage bridge and point BINGJSON_BRIDGE_URL at it (default: %v)
  - (Optional) Set BINGJSON_TIMEOUT to limit each request, as a Go duration (default: %v)
  - (Optional) Set NO_SPINNER to disable the progress animation on stderr

Usage: bingjson [flags] [--] <prompt> [contextFile]

Use '--' before a prompt which starts with '-', otherwise it's parsed as a flag.

Flags:
  -r, -raw bool               Set to true to skip the progress animation. (default %v)
  -b, -backend string         Set the backend, 'bridge' or 'test' (echo). (default %v)
  -o, -out string             Set a file to write the response document to, in addition to stdout.
  -env string                 Set the dotenv file to load. (default %v)

The response is printed to stdout as a single JSON document. If contextFile is
given, it's read before the request to continue the conversation, and
overwritten with the response afterwards.

Prompts containing any of these phrases start a new conversation without
contacting Bing:
  'reinicia la conversación', 'vamos a hablar de otra cosa', 'reinicia',
  'abre otra conversación', 'nueva conversación'

Examples:
  - bingjson "¿Qué es una mitocondria?"
  - bingjson "¿Y cuántas tiene una célula?" ~/.bingjson/context.json
  - bingjson "reinicia la conversación" ~/.bingjson/context.json
  - bingjson -r -o /tmp/answer.json "Escribe un hola mundo en Go" ctx.json
  - bingjson -r -- "-5 grados es frío?"
`

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	querier, err := internal.Setup(fmt.Sprintf(usage,
		utils.DefaultBridgeURL,
		utils.DefaultTimeout,
		false,
		internal.BackendBridge,
		utils.DefaultEnvFile,
	), args)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			return 0
		}
		// Wrong usage exits quietly, there's nothing for a consumer to parse
		if errors.Is(err, models.ErrInvalidArguments) {
			if misc.Truthy(os.Getenv("DEBUG")) {
				ancli.PrintErr(fmt.Sprintf("%v\n", err))
			}
			return 1
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}
	go func() { shutdown.Monitor(cancel) }()
	err = querier.Query(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
	return 0
}
