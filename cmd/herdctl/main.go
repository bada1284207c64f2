// Command herdctl prints herd analytics straight from the herd book
// spreadsheet, without the server or MongoDB.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
