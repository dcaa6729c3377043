package display

import (
	"fmt"
	"os"

	"github.com/backmassage/lutrules/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` _          _   ____        _
| |   _   _| |_|  _ \ _   _| | ___  ___
| |  | | | | __| |_) | | | | |/ _ \/ __|
| |__| |_| | |_|  _ <| |_| | |  __/\__ \
|_____\__,_|\__|_| \_\\__,_|_|\___||___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
