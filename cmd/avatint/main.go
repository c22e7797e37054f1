// Avatint - avatar identity colour extraction
//
// Avatint extracts one or two representative colours from an avatar
// image for use as a visual identity colour.
package main

import (
	"github.com/avatint/avatint/internal/cli"
)

func main() {
	cli.Execute()
}
