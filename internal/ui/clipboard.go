package ui

import (
	"errors"
	"os/exec"
	"strings"
)

// Clipboard receives previewed snippet content
type Clipboard interface {
	Copy(text string) error
}

// clipboardTools are tried in order; the first one on PATH wins
var clipboardTools = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
	{"clip.exe"},
}

var errNoClipboard = errors.New("no clipboard tool on PATH")

// systemClipboard pipes text into the first available clipboard tool
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	argv := lookupClipboardTool(exec.LookPath)
	if argv == nil {
		return errNoClipboard
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// lookupClipboardTool returns the argv of the first tool lookPath can find
func lookupClipboardTool(lookPath func(string) (string, error)) []string {
	for _, argv := range clipboardTools {
		if _, err := lookPath(argv[0]); err == nil {
			return argv
		}
	}
	return nil
}
