package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/voxlab/transcribe/internal/engine"
	"github.com/voxlab/transcribe/internal/envelope"
	"github.com/voxlab/transcribe/internal/logging"
	"github.com/voxlab/transcribe/internal/validate"
	"github.com/voxlab/transcribe/internal/version"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type appState struct {
	verbose    bool
	jsonLogs   bool
	noProgress bool

	audio      string
	model      string
	modelDir   string
	language   string
	engineName string
	validate   bool

	logger *zap.Logger

	buildEngineFn func(req engine.Request) (engine.Engine, engine.InferenceParams, error)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&appState{
		engineName: string(engine.KindWhisper),
		validate:   true,
	})
}

func newRootCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "transcribe",
		Short:         "Transcribe a WAV file with a local whisper or parakeet engine",
		Long: "Transcribe runs one local speech-to-text pass over a 16kHz 16-bit mono WAV\n" +
			"file and prints a single JSON line: {\"text\": ...} on stdout on success,\n" +
			"{\"error\": ...} on stderr on failure (exit code 1).",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(cmd)
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	cmd.Flags().StringVar(&app.audio, "audio", "", "Path to the WAV audio file (16kHz, 16-bit, mono)")
	cmd.Flags().StringVar(&app.model, "model", "", "Path to the model: a GGML file (whisper) or a model directory (parakeet)")
	cmd.Flags().StringVar(&app.language, "language", "", "Language code (e.g. en, es, fr); empty or \"auto\" auto-detects; ignored by the parakeet engine")
	cmd.Flags().StringVar(&app.engineName, "engine", app.engineName, "Engine: whisper|parakeet")
	cmd.Flags().BoolVar(&app.validate, "validate", app.validate, "Check that model and audio paths exist before loading the engine")
	_ = cmd.MarkFlagRequired("audio")
	_ = cmd.MarkFlagRequired("model")

	cmd.AddCommand(newSetupCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable diagnostic logs on stderr")
	cmd.Flags().BoolVar(&app.jsonLogs, "json-logs", app.jsonLogs, "Encode diagnostic logs as JSON")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func (a *appState) run(cmd *cobra.Command) error {
	kind, err := engine.ParseKind(a.engineName)
	if err != nil {
		return err
	}

	req := engine.Request{
		AudioPath: a.audio,
		ModelPath: a.model,
		Kind:      kind,
		Language:  a.language,
	}

	// Model is checked before audio so a missing model wins when both are
	// absent.
	if a.validate {
		if err := validate.Files(
			validate.Target{Label: "Model", Path: req.ModelPath},
			validate.Target{Label: "Audio", Path: req.AudioPath},
		); err != nil {
			return err
		}
	}

	buildEngine := a.buildEngineFn
	if buildEngine == nil {
		buildEngine = func(req engine.Request) (engine.Engine, engine.InferenceParams, error) {
			return req.NewEngine(a.log())
		}
	}

	eng, params, err := buildEngine(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := eng.Close(); err != nil {
			a.log().Warn("failed to release engine", zap.Error(err))
		}
	}()

	a.log().Info("loading model", zap.String("engine", string(kind)), zap.String("model", req.ModelPath))
	stopSpinner := startSpinner(a.progressEnabled(), "Loading model")
	started := time.Now()
	err = eng.LoadModel(cmd.Context())
	stopSpinner()
	if err != nil {
		return err
	}
	a.log().Info("model loaded", zap.Duration("elapsed", time.Since(started)))

	a.log().Info("transcribing...", zap.String("audio", req.AudioPath), zap.String("language", params.Language))
	stopSpinner = startSpinner(a.progressEnabled(), "Transcribing")
	started = time.Now()
	result, err := eng.Transcribe(cmd.Context(), req.AudioPath, params)
	stopSpinner()
	if err != nil {
		a.log().Warn("transcription failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return err
	}
	a.log().Info("transcription finished", zap.Duration("elapsed", time.Since(started)))

	return envelope.WriteSuccess(cmd.OutOrStdout(), result.Text)
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
