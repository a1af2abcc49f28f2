// Coverhue - colour palettes from album cover art
//
// Coverhue looks up album cover art and reduces it to a small
// representative colour palette.
package main

import (
	"github.com/coverhue/coverhue/internal/cli"
)

func main() {
	cli.Execute()
}
