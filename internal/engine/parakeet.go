package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
	"github.com/voxlab/transcribe/internal/audio"
	"go.uber.org/zap"
)

// ParakeetEngine transcribes with a NeMo Parakeet transducer exported for
// sherpa-onnx: a model directory holding quantized encoder/decoder/joiner
// ONNX files and a tokens.txt. The engine always auto-detects the language;
// inference parameters carry no knobs for it.
type ParakeetEngine struct {
	modelDir string
	params   ParakeetModelParams
	logger   *zap.Logger

	recognizer *sherpa.OfflineRecognizer
}

// NewParakeetEngine captures the model directory and load parameters. The
// models are not touched until LoadModel.
func NewParakeetEngine(modelDir string, params ParakeetModelParams, logger *zap.Logger) *ParakeetEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParakeetEngine{modelDir: modelDir, params: params, logger: logger}
}

// ModelFiles returns the transducer file set for a model directory and
// quantization, in encoder/decoder/joiner/tokens order.
func ModelFiles(modelDir string, quant Quantization) (encoder, decoder, joiner, tokens string) {
	encoder = filepath.Join(modelDir, fmt.Sprintf("encoder.%s.onnx", quant))
	decoder = filepath.Join(modelDir, fmt.Sprintf("decoder.%s.onnx", quant))
	joiner = filepath.Join(modelDir, fmt.Sprintf("joiner.%s.onnx", quant))
	tokens = filepath.Join(modelDir, "tokens.txt")
	return encoder, decoder, joiner, tokens
}

// LoadModel builds the sherpa-onnx offline recognizer from the model
// directory. sherpa-onnx reports construction failures out of band, so a nil
// recognizer is surfaced as an opaque load error.
func (e *ParakeetEngine) LoadModel(_ context.Context) error {
	encoder, decoder, joiner, tokens := ModelFiles(e.modelDir, e.params.Quantization)
	e.logger.Debug("loading parakeet model",
		zap.String("model_dir", e.modelDir),
		zap.String("quantization", string(e.params.Quantization)),
	)

	config := sherpa.OfflineRecognizerConfig{}
	config.FeatConfig = sherpa.FeatureConfig{SampleRate: 16000, FeatureDim: 80}
	config.ModelConfig.Transducer.Encoder = encoder
	config.ModelConfig.Transducer.Decoder = decoder
	config.ModelConfig.Transducer.Joiner = joiner
	config.ModelConfig.Tokens = tokens
	config.ModelConfig.ModelType = "nemo_transducer"
	config.ModelConfig.NumThreads = runtime.NumCPU()
	config.DecodingMethod = "greedy_search"

	recognizer := sherpa.NewOfflineRecognizer(&config)
	if recognizer == nil {
		return fmt.Errorf("load parakeet model from %s: recognizer construction failed", e.modelDir)
	}

	e.recognizer = recognizer
	return nil
}

// Transcribe decodes the WAV file and runs the recognizer over it.
// sherpa-onnx resamples internally, so any PCM sample rate is accepted.
// InferenceParams is ignored: this engine has no per-call knobs.
func (e *ParakeetEngine) Transcribe(_ context.Context, audioPath string, _ InferenceParams) (Result, error) {
	samples, rate, err := audio.ReadWAV(audioPath)
	if err != nil {
		return Result{}, err
	}

	stream := sherpa.NewOfflineStream(e.recognizer)
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(rate, samples)
	e.recognizer.Decode(stream)

	result := stream.GetResult()
	if result == nil {
		return Result{}, fmt.Errorf("parakeet inference on %s produced no result", audioPath)
	}

	return Result{Text: strings.TrimSpace(result.Text)}, nil
}

// Close releases the recognizer.
func (e *ParakeetEngine) Close() error {
	if e.recognizer != nil {
		sherpa.DeleteOfflineRecognizer(e.recognizer)
		e.recognizer = nil
	}
	return nil
}
