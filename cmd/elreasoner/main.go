// Command elreasoner is the CLI front end for the elreasoner library:
// classify an ontology, answer a BGP query against its saturated ABox, or
// export the saturated ABox to SQLite.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
