package config

import (
	"fmt"
	"io"
	"os"
)

// ExitCodeConfig is the process exit status for unusable configuration,
// matching the flag package's usage-error status.
const ExitCodeConfig = 2

// ExitInvalid reports a configuration error for command on stderr and exits.
func ExitInvalid(command string, err error) {
	writeInvalid(os.Stderr, command, err)
	os.Exit(ExitCodeConfig)
}

func writeInvalid(w io.Writer, command string, err error) {
	if command == "" {
		command = "docstats"
	}
	fmt.Fprintf(w, "%s: invalid configuration: %v\n", command, err)
}
