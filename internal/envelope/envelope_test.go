package envelope

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSuccessProducesSingleJSONLine(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	require.NoError(t, WriteSuccess(out, "hello world"))
	require.Equal(t, "{\"text\":\"hello world\"}\n", out.String())
}

func TestWriteSuccessAllowsEmptyText(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	require.NoError(t, WriteSuccess(out, ""))
	require.Equal(t, "{\"text\":\"\"}\n", out.String())
}

func TestWriteFailureProducesSingleJSONLine(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	require.NoError(t, WriteFailure(out, "Model file not found: /tmp/missing.bin"))
	require.Equal(t, "{\"error\":\"Model file not found: /tmp/missing.bin\"}\n", out.String())
}

func TestEnvelopeRoundTripHasExactlyOneKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(out *bytes.Buffer) error
		key   string
	}{
		{
			name:  "success",
			write: func(out *bytes.Buffer) error { return WriteSuccess(out, "some words") },
			key:   "text",
		},
		{
			name:  "failure",
			write: func(out *bytes.Buffer) error { return WriteFailure(out, "engine exploded") },
			key:   "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := new(bytes.Buffer)
			require.NoError(t, tt.write(out))

			var decoded map[string]string
			require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
			require.Len(t, decoded, 1)
			require.Contains(t, decoded, tt.key)
		})
	}
}

func TestFailureEscapesControlCharacters(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	require.NoError(t, WriteFailure(out, "line one\nline two"))

	// The envelope must stay a single physical line even for multi-line
	// engine error messages.
	require.Equal(t, 1, bytes.Count(out.Bytes(), []byte{'\n'}))

	var decoded Failure
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, "line one\nline two", decoded.Error)
}
