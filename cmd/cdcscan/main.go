// Command cdcscan prints the content-defined chunk boundaries of files.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
