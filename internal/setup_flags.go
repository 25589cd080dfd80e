package internal

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/baalimago/bingjson/internal/models"
	"github.com/baalimago/bingjson/internal/utils"
)

// Configurations holds the parsed flags. Backend selects the sender: 'bridge'
// for the remote service, 'test' for a local echo.
type Configurations struct {
	PrintRaw bool
	Backend  string
	OutPath  string
	EnvFile  string
	Version  bool
}

var defaultFlags = Configurations{
	PrintRaw: false,
	Backend:  BackendBridge,
	OutPath:  "",
	EnvFile:  utils.DefaultEnvFile,
}

// parseFlags parses CLI flags into Configurations, returning the positional
// arguments which are left.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("bingjson", flag.ContinueOnError)
	// Stdout is reserved for the response document
	fs.SetOutput(io.Discard)

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to skip the progress animation.")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to skip the progress animation.")

	backendShort := fs.String("b", defaults.Backend, "Set the backend to send prompts to. Mutually exclusive with backend flag.")
	backendLong := fs.String("backend", defaults.Backend, "Set the backend to send prompts to. Mutually exclusive with b flag.")

	outShort := fs.String("o", defaults.OutPath, "Set a file to write the response document to, in addition to stdout.")
	outLong := fs.String("out", defaults.OutPath, "Set a file to write the response document to, in addition to stdout.")

	envFile := fs.String("env", defaults.EnvFile, "Set the dotenv file to load environment variables from.")

	versionShort := fs.Bool("v", defaults.Version, "Set to true to print the version and exit.")
	versionLong := fs.Bool("version", defaults.Version, "Set to true to print the version and exit.")

	err := fs.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Configurations{}, nil, err
		}
		return Configurations{}, nil, fmt.Errorf("%w: failed to parse args: %w", models.ErrInvalidArguments, err)
	}

	backend, err := utils.ReturnNonDefault(*backendShort, *backendLong, defaults.Backend)
	if err != nil {
		return Configurations{}, nil, flagError(err, "b", "backend")
	}
	outPath, err := utils.ReturnNonDefault(*outShort, *outLong, defaults.OutPath)
	if err != nil {
		return Configurations{}, nil, flagError(err, "o", "out")
	}

	return Configurations{
		PrintRaw: *printRawShort || *printRawLong,
		Backend:  backend,
		OutPath:  outPath,
		EnvFile:  *envFile,
		Version:  *versionShort || *versionLong,
	}, fs.Args(), nil
}

func flagError(err error, shortFlag, longFlag string) error {
	return fmt.Errorf("%w: %v and %v flags are mutually exclusive: %w", models.ErrInvalidArguments, shortFlag, longFlag, err)
}
