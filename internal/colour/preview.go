package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured preview block for a colour. Width
// specifies how many characters wide the block should be. Uses
// background colour with spaces for a solid block.
func Preview(rgb RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	block := strings.Repeat(" ", width)

	return bgColour + block + ansiReset
}

// FormatWithPreview formats a colour as its preview block followed by
// the hex code.
func FormatWithPreview(rgb RGB, width int) string {
	return fmt.Sprintf("%s %s", Preview(rgb, width), rgb.Hex())
}

// FormatWithLabel formats a colour with a label between the preview
// block and hex code.
func FormatWithLabel(rgb RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-10s %s", Preview(rgb, width), label, rgb.Hex())
}

// SupportsANSIColours reports whether stdout is likely to render ANSI
// truecolour sequences: it must be a terminal, TERM must not be dumb,
// and NO_COLOR must be unset.
func SupportsANSIColours() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
