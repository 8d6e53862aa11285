package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/satishbabariya/quickform-go/cli/commands"
	"github.com/satishbabariya/quickform-go/schema/diagnostics"
)

// Exit codes: 0 success, 1 invalid schema, 2 generation or I/O failure.
func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var diags *diagnostics.Diagnostics
	if errors.As(err, &diags) {
		// Diagnostics were already pretty-printed by the command.
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(2)
}
