package theme

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalSignal reads the background of the attached terminal once. It is
// the closest thing to an OS color-scheme query a CLI has.
type TerminalSignal struct {
	dark bool
}

// DetectTerminal queries the terminal behind f. Anything that is not a
// terminal reports a light preference.
func DetectTerminal(f *os.File) *TerminalSignal {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return &TerminalSignal{}
	}
	return &TerminalSignal{dark: termenv.NewOutput(f).HasDarkBackground()}
}

func (t *TerminalSignal) PrefersDark() (bool, error) {
	return t.dark, nil
}

// Subscribe never fires; the terminal background is sampled once.
func (t *TerminalSignal) Subscribe(func(bool)) func() {
	return func() {}
}
