// Command cvekb filters the cvelistV5 corpus down to web-relevant
// vulnerabilities and prepares the result for knowledge-base ingestion.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
