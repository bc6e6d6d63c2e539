package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shelltab/shelltab/internal/logging"
	"github.com/shelltab/shelltab/internal/model"
	"github.com/shelltab/shelltab/internal/procenv"
	"github.com/shelltab/shelltab/internal/scriptparser"
	"github.com/shelltab/shelltab/internal/valueprovider"
	"github.com/stretchr/testify/require"
)

// recordingLogger is a ScriptLogger that records every call for assertions,
// standing in for a real Logger so tests don't touch the filesystem.
type recordingLogger struct {
	lines    []string
	warnings []string
	started  bool
	finished bool
	success  bool
	failure  error
}

func (r *recordingLogger) StartScript(model.Script)                              { r.started = true }
func (r *recordingLogger) FinishScript(success bool)                             { r.finished, r.success = true, success }
func (r *recordingLogger) LogStart(kind, payload, line string, ignores bool, i, n int) {}
func (r *recordingLogger) Log(msg logging.LogMessage)                            { r.lines = append(r.lines, msg.Text) }
func (r *recordingLogger) LogWait()                                              {}
func (r *recordingLogger) LogSuccess()                                           {}
func (r *recordingLogger) LogFailure(err error)                                  { r.failure = err }
func (r *recordingLogger) Warn(text string)                                      { r.warnings = append(r.warnings, text) }

func TestExecute_RunsSynchronousCommandsInOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out.txt")
	env := procenv.New(nil, nil, nil, nil, dir, nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindSynchronous, Shell: "echo one >> " + outFile},
		{Kind: scriptparser.KindSynchronous, Shell: "echo two >> " + outFile},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.NoError(t, err)
	require.True(t, logger.started)
	require.True(t, logger.finished)
	require.True(t, logger.success)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(content))
}

func TestExecute_AbortsOnSynchronousFailure(t *testing.T) {
	t.Parallel()
	env := procenv.New(nil, nil, nil, nil, t.TempDir(), nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindSynchronous, Shell: "exit 1"},
		{Kind: scriptparser.KindSynchronous, Shell: "echo should-not-run"},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.Error(t, err)
	require.False(t, logger.success)
}

func TestExecute_IgnoreErrorContinues(t *testing.T) {
	t.Parallel()
	env := procenv.New(nil, nil, nil, nil, t.TempDir(), nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindSynchronous, Shell: "exit 1", IgnoreError: true},
		{Kind: scriptparser.KindSynchronous, Shell: "true"},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.NoError(t, err)
	require.True(t, logger.success)
	require.NotEmpty(t, logger.warnings)
}

func TestExecute_WaitDrainsDeferredQueue(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outFile := filepath.Join(dir, "deferred.txt")
	env := procenv.New(nil, nil, nil, nil, dir, nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindDeferred, Shell: "echo background >> " + outFile},
		{Kind: scriptparser.KindWait},
		{Kind: scriptparser.KindSynchronous, Shell: "true"},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Equal(t, "background\n", string(content))
}

func TestExecute_DeferredFailureSurfacesAtDrain(t *testing.T) {
	t.Parallel()
	env := procenv.New(nil, nil, nil, nil, t.TempDir(), nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindDeferred, Shell: "exit 1"},
		{Kind: scriptparser.KindWait},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.Error(t, err)
}

func TestExecute_FinallyDrainsOnEarlyFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outFile := filepath.Join(dir, "deferred.txt")
	env := procenv.New(nil, nil, nil, nil, dir, nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindDeferred, Shell: "sleep 0.05 && echo background >> " + outFile},
		{Kind: scriptparser.KindSynchronous, Shell: "exit 1"},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.Error(t, err)

	content, readErr := os.ReadFile(outFile)
	require.NoError(t, readErr)
	require.Equal(t, "background\n", string(content))
}

func TestExecute_RendersEnvironmentTemplatesBeforeCommands(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tmpl")
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello __NAME__"), 0o644))

	env := procenv.New(
		map[string]valueprovider.Provider{"NAME": valueprovider.Simple{Value: "world"}},
		nil, nil,
		[]*model.Template{model.NewTemplate(src, dst)},
		dir, nil,
	)
	logger := &recordingLogger{}
	exec := New(env, logger)

	err := exec.Execute(model.Script{Filename: "script.sh"}, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(content))
}

func TestExecute_InlineTemplateCommand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tmpl")
	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(src, []byte("static content"), 0o644))

	env := procenv.New(nil, nil, nil, nil, dir, nil)
	logger := &recordingLogger{}
	exec := New(env, logger)

	commands := []scriptparser.Command{
		{Kind: scriptparser.KindTemplate, TemplateSource: src, TemplateDestination: dst},
	}
	err := exec.Execute(model.Script{Filename: "script.sh"}, commands)
	require.NoError(t, err)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "static content", string(content))
}
