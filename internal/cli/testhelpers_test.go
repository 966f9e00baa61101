package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxlab/transcribe/internal/engine"
)

func runCommand(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// fakeEngine records the pipeline's calls so tests can assert on sequencing
// and parameters without loading a real model.
type fakeEngine struct {
	text          string
	loadErr       error
	transcribeErr error

	loadCalls       int
	transcribeCalls int
	gotAudioPath    string
	gotParams       engine.InferenceParams
	closed          bool
}

func (f *fakeEngine) LoadModel(_ context.Context) error {
	f.loadCalls++
	return f.loadErr
}

func (f *fakeEngine) Transcribe(_ context.Context, audioPath string, params engine.InferenceParams) (engine.Result, error) {
	f.transcribeCalls++
	f.gotAudioPath = audioPath
	f.gotParams = params
	if f.transcribeErr != nil {
		return engine.Result{}, f.transcribeErr
	}
	return engine.Result{Text: f.text}, nil
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

// runPipeline executes the root command with the fake engine injected,
// recording the request the builder was handed.
func runPipeline(t *testing.T, fake *fakeEngine, gotReq *engine.Request, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	app := &appState{
		engineName: string(engine.KindWhisper),
		validate:   true,
		noProgress: true,
		buildEngineFn: func(req engine.Request) (engine.Engine, engine.InferenceParams, error) {
			if gotReq != nil {
				*gotReq = req
			}
			_, params, err := req.NewEngine(nil)
			if err != nil {
				return nil, engine.InferenceParams{}, err
			}
			return fake, params, nil
		},
	}

	cmd := newRootCmd(app)
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fixture"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
