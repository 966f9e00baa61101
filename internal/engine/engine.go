// Package engine provides the two local speech-to-text engines behind one
// capability surface: load a model, transcribe a file. The set of engines is
// closed and selected once at startup; nothing here is safe for concurrent
// use and nothing needs to be, since one invocation owns one engine.
package engine

import (
	"context"
	"fmt"
	"strings"
)

// Kind identifies one of the supported engines.
type Kind string

const (
	// KindWhisper is the general engine: a single GGML model file loaded
	// through the whisper.cpp bindings.
	KindWhisper Kind = "whisper"
	// KindParakeet is the quantized engine: a directory of int8 ONNX
	// transducer models decoded through sherpa-onnx.
	KindParakeet Kind = "parakeet"
)

// ParseKind maps a CLI engine name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindWhisper, "":
		return KindWhisper, nil
	case KindParakeet:
		return KindParakeet, nil
	default:
		return "", fmt.Errorf("unknown engine %q (supported: %s, %s)", name, KindWhisper, KindParakeet)
	}
}

// InferenceParams controls a single transcription. An empty Language means
// the engine auto-detects.
type InferenceParams struct {
	Language string
}

// Result is the transcription outcome. Text may be empty for silent audio.
type Result struct {
	Text string
}

// Engine is the capability surface shared by both engines. LoadModel must
// succeed before Transcribe is called; the run aborts on a load failure, so
// the adapters do not re-check their own state. Both calls block until done.
type Engine interface {
	LoadModel(ctx context.Context) error
	Transcribe(ctx context.Context, audioPath string, params InferenceParams) (Result, error)
	Close() error
}

// WhisperModelParams configures loading of the general engine's model.
type WhisperModelParams struct {
	UseGPU bool
}

// Quantization selects the weight precision of the quantized engine.
type Quantization string

// QuantInt8 is the only supported precision.
const QuantInt8 Quantization = "int8"

// ParakeetModelParams configures loading of the quantized engine's models.
type ParakeetModelParams struct {
	Quantization Quantization
}
