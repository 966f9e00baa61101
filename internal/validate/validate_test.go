package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesSucceedsWhenAllPathsExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	model := filepath.Join(dir, "model.bin")
	audio := filepath.Join(dir, "audio.wav")
	require.NoError(t, os.WriteFile(model, []byte("m"), 0o644))
	require.NoError(t, os.WriteFile(audio, []byte("a"), 0o644))

	err := Files(
		Target{Label: "Model", Path: model},
		Target{Label: "Audio", Path: audio},
	)
	require.NoError(t, err)
}

func TestFilesReportsFirstMissingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.wav")
	require.NoError(t, os.WriteFile(audio, []byte("a"), 0o644))

	err := Files(
		Target{Label: "Model", Path: filepath.Join(dir, "missing.bin")},
		Target{Label: "Audio", Path: audio},
	)
	require.Error(t, err)
	require.Equal(t, "Model file not found: "+filepath.Join(dir, "missing.bin"), err.Error())
}

func TestFilesChecksModelBeforeAudio(t *testing.T) {
	t.Parallel()

	// Both paths missing: the first target wins even though the second is
	// missing too.
	err := Files(
		Target{Label: "Model", Path: "/no/such/model.bin"},
		Target{Label: "Audio", Path: "/no/such/audio.wav"},
	)
	require.Error(t, err)
	require.Equal(t, "Model file not found: /no/such/model.bin", err.Error())
}

func TestFilesIsIdempotent(t *testing.T) {
	t.Parallel()

	target := Target{Label: "Audio", Path: "/no/such/audio.wav"}

	first := Files(target)
	second := Files(target)
	require.Error(t, first)
	require.Error(t, second)
	require.Equal(t, first.Error(), second.Error())
}

func TestFilesAcceptsDirectories(t *testing.T) {
	t.Parallel()

	// The quantized engine takes a model directory rather than a file; the
	// existence check treats both the same.
	err := Files(Target{Label: "Model", Path: t.TempDir()})
	require.NoError(t, err)
}
