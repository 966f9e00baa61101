// Package validate performs pre-flight existence checks on input paths so
// that the most common failure mode, a mistyped path, is reported with an
// actionable message instead of an opaque engine error.
package validate

import (
	"fmt"
	"os"
)

// Target pairs a human-readable label with the path it describes.
type Target struct {
	Label string
	Path  string
}

// Files checks each target in order and returns an error for the first
// missing path without looking at the rest. The error message is part of the
// tool's output contract: "<Label> file not found: <path>". All targets
// existing produces no output and a nil error.
func Files(targets ...Target) error {
	for _, target := range targets {
		if _, err := os.Stat(target.Path); err != nil {
			return fmt.Errorf("%s file not found: %s", target.Label, target.Path)
		}
	}
	return nil
}
