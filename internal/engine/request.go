package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Request captures one invocation's input, built once from the CLI and
// immutable afterwards.
type Request struct {
	AudioPath string
	ModelPath string
	Kind      Kind
	Language  string
}

// NewEngine pairs the request's engine kind with that engine's model and
// inference parameters.
//
// Whisper always loads with GPU enabled and receives the language verbatim
// (empty or "auto" means auto-detect). Parakeet always loads int8 weights and
// always auto-detects: the --language flag exists on its CLI surface for
// symmetry but has no effect, which is deliberate and documented rather than
// papered over.
func (r Request) NewEngine(logger *zap.Logger) (Engine, InferenceParams, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch r.Kind {
	case KindWhisper:
		params := InferenceParams{Language: normalizeLanguage(r.Language)}
		return NewWhisperEngine(r.ModelPath, WhisperModelParams{UseGPU: true}, logger), params, nil
	case KindParakeet:
		if lang := normalizeLanguage(r.Language); lang != "" {
			logger.Debug("parakeet always auto-detects; --language has no effect", zap.String("language", lang))
		}
		return NewParakeetEngine(r.ModelPath, ParakeetModelParams{Quantization: QuantInt8}, logger), InferenceParams{}, nil
	default:
		return nil, InferenceParams{}, fmt.Errorf("unknown engine kind %q", r.Kind)
	}
}

func normalizeLanguage(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "auto" {
		return ""
	}
	return trimmed
}
