package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"golang.org/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameDuration = 80 * time.Millisecond

// StartAnimation shows a spinner with the label and elapsed time on stderr,
// as long as stderr is a terminal. The returned func stops the spinner and
// clears the line, it's safe to call more than once.
func StartAnimation(label string) func() {
	fd := int(os.Stderr.Fd())
	if misc.Truthy(os.Getenv("NO_SPINNER")) || !term.IsTerminal(fd) {
		return func() {}
	}
	termWidth, _, err := term.GetSize(fd)
	if err != nil || termWidth <= 0 {
		termWidth = 80
	}
	return startAnimation(os.Stderr, label, termWidth)
}

func startAnimation(w io.Writer, label string, termWidth int) func() {
	t0 := time.Now()
	ticker := time.NewTicker(frameDuration)
	stop := make(chan struct{})
	done := make(chan struct{})
	clearLine := "\r" + strings.Repeat(" ", termWidth) + "\r"
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fmt.Fprint(w, clearLine)
				fmt.Fprint(w, frameLine(label, time.Since(t0), termWidth))
			case <-stop:
				fmt.Fprint(w, clearLine)
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}

func frameLine(label string, elapsed time.Duration, termWidth int) string {
	frame := spinnerFrames[int(elapsed/frameDuration)%len(spinnerFrames)]
	line := fmt.Sprintf("%v %v (%v)", frame, label, elapsed.Round(100*time.Millisecond))
	runes := []rune(line)
	if len(runes) >= termWidth {
		line = string(runes[:termWidth-1])
	}
	return line
}
