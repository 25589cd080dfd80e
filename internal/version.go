package internal

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/baalimago/bingjson/internal/utils"
)

// Set with buildflag if built in pipeline and not using go install
var (
	BuildVersion  = ""
	BuildChecksum = ""
)

// printVersion writes the version and dependencies to w. It always ends the
// run, so the error is ErrUserInitiatedExit on success.
func printVersion(w io.Writer) error {
	hasPrintedVersion := false
	if BuildVersion != "" {
		hasPrintedVersion = true
		fmt.Fprintln(w, "version: "+BuildVersion)
		if BuildChecksum != "" {
			fmt.Fprintln(w, "checksum: "+BuildChecksum)
		}
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	if !hasPrintedVersion {
		fmt.Fprintln(w, "version: "+bi.Main.Version)
	}
	for _, dep := range bi.Deps {
		fmt.Fprintf(w, "%s %s\n", dep.Path, dep.Version)
	}
	return utils.ErrUserInitiatedExit
}
