// Package progress builds the progress bars shown during long copies.
package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const nonTerminalThrottle = 5 * time.Second

// Bytes returns a byte-count progress bar on stderr. When stderr is not a
// terminal the bar is throttled so logs are not flooded with redraws.
func Bytes(maxBytes int64, description ...string) *progressbar.ProgressBar {
	bar := progressbar.DefaultBytes(maxBytes, description...)

	applyNonTerminalOpts(bar)

	return bar
}

// BytesSilent returns an invisible bar, so call sites stay uniform when
// progress output is switched off.
func BytesSilent(maxBytes int64) *progressbar.ProgressBar {
	bar := progressbar.DefaultBytesSilent(maxBytes)

	applyNonTerminalOpts(bar)

	return bar
}

func applyNonTerminalOpts(bar *progressbar.ProgressBar) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}

	progressbar.OptionThrottle(nonTerminalThrottle)(bar)
}
