// Package envelope renders the single-line JSON result envelope that forms
// the tool's output contract: {"text": ...} on stdout for success,
// {"error": ...} on stderr for failure. Exactly one envelope is written per
// run, and the two shapes are mutually exclusive.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Success struct {
	Text string `json:"text"`
}

type Failure struct {
	Error string `json:"error"`
}

// WriteSuccess writes the success envelope followed by a newline.
func WriteSuccess(w io.Writer, text string) error {
	return writeLine(w, Success{Text: text})
}

// WriteFailure writes the failure envelope followed by a newline. When w is a
// file, it is synced afterwards so the diagnostic survives an immediate
// process exit on platforms that buffer stderr.
func WriteFailure(w io.Writer, message string) error {
	if err := writeLine(w, Failure{Error: message}); err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
	return nil
}

func writeLine(w io.Writer, payload any) error {
	line, err := json.Marshal(payload)
	if err != nil {
		// Both payloads are flat structs of strings; if they cannot be
		// marshalled there is no saner channel left to report through.
		panic(fmt.Sprintf("envelope: marshal result: %v", err))
	}

	line = append(line, '\n')
	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}
