package main

import (
	"os"

	"github.com/voxlab/transcribe/internal/cli"
	"github.com/voxlab/transcribe/internal/envelope"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		// Every failure, from flag parsing to engine faults, leaves the
		// process through the same single-line envelope on stderr.
		_ = envelope.WriteFailure(os.Stderr, err.Error())
		os.Exit(1)
	}
}
