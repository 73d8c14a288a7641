// Command composer renders layout documents and card thumbnails to PNG.
//
//	composer render card.yaml -o card.png
//	composer thumb --base cards/0412.png --rarity 4 --owned --caption "Lv. 60" -o thumb.png
//	composer thumb --pair kasumi,arisa -o badge.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
