package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEngineWhisperCarriesLanguageAndGPUDefault(t *testing.T) {
	t.Parallel()

	req := Request{
		AudioPath: "/tmp/a.wav",
		ModelPath: "/tmp/ggml-small.bin",
		Kind:      KindWhisper,
		Language:  "es",
	}

	eng, params, err := req.NewEngine(nil)
	require.NoError(t, err)
	require.Equal(t, InferenceParams{Language: "es"}, params)

	w, ok := eng.(*WhisperEngine)
	require.True(t, ok, "whisper request must build a whisper engine")
	require.Equal(t, "/tmp/ggml-small.bin", w.modelPath)
	require.Equal(t, WhisperModelParams{UseGPU: true}, w.params)
}

func TestNewEngineWhisperAutoLanguageMeansDetect(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"", "auto", " AUTO "} {
		req := Request{Kind: KindWhisper, Language: lang}
		_, params, err := req.NewEngine(nil)
		require.NoError(t, err)
		require.Empty(t, params.Language, "language %q should mean auto-detect", lang)
	}
}

func TestNewEngineParakeetIgnoresLanguage(t *testing.T) {
	t.Parallel()

	// The flag is accepted on the parakeet surface for symmetry but must
	// never reach inference.
	for _, lang := range []string{"", "en", "fr", "auto"} {
		req := Request{
			ModelPath: "/tmp/parakeet-tdt-int8",
			Kind:      KindParakeet,
			Language:  lang,
		}

		eng, params, err := req.NewEngine(nil)
		require.NoError(t, err)
		require.Equal(t, InferenceParams{}, params, "language %q leaked into parakeet params", lang)

		p, ok := eng.(*ParakeetEngine)
		require.True(t, ok, "parakeet request must build a parakeet engine")
		require.Equal(t, ParakeetModelParams{Quantization: QuantInt8}, p.params)
		require.Equal(t, "/tmp/parakeet-tdt-int8", p.modelDir)
	}
}

func TestNewEngineRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, _, err := Request{Kind: Kind("bogus")}.NewEngine(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown engine kind")
}

func TestModelFilesInt8Layout(t *testing.T) {
	t.Parallel()

	encoder, decoder, joiner, tokens := ModelFiles("/models/parakeet", QuantInt8)
	require.Equal(t, filepath.Join("/models/parakeet", "encoder.int8.onnx"), encoder)
	require.Equal(t, filepath.Join("/models/parakeet", "decoder.int8.onnx"), decoder)
	require.Equal(t, filepath.Join("/models/parakeet", "joiner.int8.onnx"), joiner)
	require.Equal(t, filepath.Join("/models/parakeet", "tokens.txt"), tokens)
}
