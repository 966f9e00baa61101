package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/voxlab/transcribe/internal/audio"
	"go.uber.org/zap"
)

const whisperSampleRate = 16000

// WhisperEngine transcribes with a GGML model file through the whisper.cpp
// Go bindings.
type WhisperEngine struct {
	modelPath string
	params    WhisperModelParams
	logger    *zap.Logger

	model whisper.Model
}

// NewWhisperEngine captures the model path and load parameters. The model is
// not touched until LoadModel.
func NewWhisperEngine(modelPath string, params WhisperModelParams, logger *zap.Logger) *WhisperEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhisperEngine{modelPath: modelPath, params: params, logger: logger}
}

// LoadModel loads the GGML model into memory. The bindings pick the compute
// device from their build; UseGPU records the requested default.
func (e *WhisperEngine) LoadModel(_ context.Context) error {
	e.logger.Debug("loading whisper model", zap.String("model", e.modelPath), zap.Bool("use_gpu", e.params.UseGPU))

	model, err := whisper.New(e.modelPath)
	if err != nil {
		return fmt.Errorf("load whisper model %s: %w", e.modelPath, err)
	}

	e.model = model
	return nil
}

// Transcribe decodes the WAV file and runs whisper inference over it. The
// input must be 16 kHz mono 16-bit PCM; anything else is rejected before
// inference starts.
func (e *WhisperEngine) Transcribe(_ context.Context, audioPath string, params InferenceParams) (Result, error) {
	samples, rate, err := audio.ReadWAV(audioPath)
	if err != nil {
		return Result{}, err
	}
	if rate != whisperSampleRate {
		return Result{}, fmt.Errorf("%w: %d Hz sample rate (expected %d Hz)", audio.ErrUnsupportedWAV, rate, whisperSampleRate)
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return Result{}, fmt.Errorf("create whisper context: %w", err)
	}

	if params.Language != "" {
		if err := wctx.SetLanguage(params.Language); err != nil {
			return Result{}, fmt.Errorf("set language %q: %w", params.Language, err)
		}
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return Result{}, fmt.Errorf("whisper inference: %w", err)
	}

	var segments []string
	for {
		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read whisper segment: %w", err)
		}
		segments = append(segments, segment.Text)
	}

	return Result{Text: strings.TrimSpace(strings.Join(segments, " "))}, nil
}

// Close releases the model.
func (e *WhisperEngine) Close() error {
	if e.model == nil {
		return nil
	}
	return e.model.Close()
}
