// Package executor drives a parsed Command stream against the host OS: the
// Process Executor of the design. It runs single-threaded and cooperatively
// except for deferred processes, which are real OS children running
// concurrently with the dispatcher.
package executor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shelltab/shelltab/internal/logging"
	"github.com/shelltab/shelltab/internal/model"
	"github.com/shelltab/shelltab/internal/procenv"
	"github.com/shelltab/shelltab/internal/scriptparser"
	"github.com/shelltab/shelltab/internal/tmpl"
)

// Executor runs a Command stream against a Process Environment, reporting
// progress through a ScriptLogger.
type Executor struct {
	env    *procenv.Environment
	logger logging.ScriptLogger
}

// New builds an Executor.
func New(env *procenv.Environment, logger logging.ScriptLogger) *Executor {
	return &Executor{env: env, logger: logger}
}

// deferredProcess tracks one started-but-not-yet-drained background
// process: its buffered output and a channel signalling its exit.
type deferredProcess struct {
	cmd    scriptparser.Command
	proc   *exec.Cmd
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	done   chan error
}

// Execute renders the environment's templates, then dispatches commands in
// order. The deferred queue is drained unconditionally on every exit path —
// success, a synchronous failure, or an unknown command kind.
func (e *Executor) Execute(script model.Script, commands []scriptparser.Command) error {
	e.logger.StartScript(script)

	var execErr error
	var deferred []*deferredProcess

	defer func() {
		drainErr := e.drain(deferred)
		e.logger.FinishScript(execErr == nil && drainErr == nil)
	}()

	for _, t := range e.env.GetTemplates() {
		if err := e.renderTemplate(t.Source, t.Destination); err != nil {
			execErr = err
			return execErr
		}
	}

	total := len(commands)
	for i, cmd := range commands {
		index := i + 1
		switch cmd.Kind {
		case scriptparser.KindSynchronous:
			e.logger.LogStart("run", cmd.Shell, cmd.Line, cmd.IgnoreError, index, total)
			if err := e.runSynchronous(cmd); err != nil {
				if !cmd.IgnoreError {
					execErr = &ExecutionError{Command: cmd, Err: err}
					e.logger.LogFailure(execErr)
					return execErr
				}
				e.logger.Warn(fmt.Sprintf("ignored failure: %v", err))
			} else {
				e.logger.LogSuccess()
			}

		case scriptparser.KindDeferred:
			e.logger.LogStart("deferred", cmd.Shell, cmd.Line, cmd.IgnoreError, index, total)
			dp, err := e.startDeferred(cmd)
			if err != nil {
				execErr = &ExecutionError{Command: cmd, Err: err}
				e.logger.LogFailure(execErr)
				return execErr
			}
			deferred = append(deferred, dp)

		case scriptparser.KindTemplate:
			e.logger.LogStart("template", cmd.TemplateSource+":"+cmd.TemplateDestination, cmd.Line, cmd.IgnoreError, index, total)
			if err := e.renderTemplate(cmd.TemplateSource, cmd.TemplateDestination); err != nil {
				execErr = &ExecutionError{Command: cmd, Err: err}
				e.logger.LogFailure(execErr)
				return execErr
			}
			e.logger.LogSuccess()

		case scriptparser.KindWait:
			e.logger.LogWait()
			err := e.drain(deferred)
			deferred = deferred[:0]
			if err != nil {
				execErr = err
				e.logger.LogFailure(execErr)
				return execErr
			}

		case scriptparser.KindBash:
			e.logger.LogStart("bash", cmd.BashPath, cmd.Line, cmd.IgnoreError, index, total)
			if err := e.runBash(cmd); err != nil {
				if !cmd.IgnoreError {
					execErr = &ExecutionError{Command: cmd, Err: err}
					e.logger.LogFailure(execErr)
					return execErr
				}
				e.logger.Warn(fmt.Sprintf("ignored failure: %v", err))
			} else {
				e.logger.LogSuccess()
			}

		default:
			execErr = &UnknownCommandError{Kind: cmd.Kind}
			return execErr
		}
	}
	return execErr
}

func (e *Executor) runSynchronous(cmd scriptparser.Command) error {
	rendered, err := tmpl.Render(cmd.Shell, e.env.GetAllValues())
	if err != nil {
		return err
	}
	proc, err := e.env.CreateProcess(rendered)
	if err != nil {
		return err
	}
	if cmd.TTY {
		proc.Stdin = os.Stdin
		proc.Stdout = os.Stdout
		proc.Stderr = os.Stderr
	} else {
		proc.Stdout = &logWriter{logger: e.logger}
		proc.Stderr = &logWriter{logger: e.logger, isErr: true}
	}
	return proc.Run()
}

func (e *Executor) startDeferred(cmd scriptparser.Command) (*deferredProcess, error) {
	rendered, err := tmpl.Render(cmd.Shell, e.env.GetAllValues())
	if err != nil {
		return nil, err
	}
	proc, err := e.env.CreateProcess(rendered)
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr
	if err := proc.Start(); err != nil {
		return nil, err
	}

	dp := &deferredProcess{cmd: cmd, proc: proc, stdout: &stdout, stderr: &stderr, done: make(chan error, 1)}
	go func() { dp.done <- proc.Wait() }()
	return dp, nil
}

// drain waits for every deferred process in insertion order, replays its
// buffered output through the Logger, and returns an ExecutionError if any
// non-ignoreError process exited non-zero. It always waits for every
// process, even after the first failure, so no OS child is left running.
func (e *Executor) drain(deferred []*deferredProcess) error {
	var failed []*deferredProcess
	for _, dp := range deferred {
		waitErr := <-dp.done
		for _, line := range splitLines(dp.stdout.String()) {
			e.logger.Log(logging.LogMessage{Text: line})
		}
		for _, line := range splitLines(dp.stderr.String()) {
			e.logger.Log(logging.LogMessage{Text: line, IsErr: true})
		}
		if waitErr == nil {
			continue
		}
		if dp.cmd.IgnoreError {
			e.logger.Warn(fmt.Sprintf("deferred process %q ignored failure: %v", dp.cmd.Shell, waitErr))
			continue
		}
		failed = append(failed, dp)
	}
	if len(failed) == 0 {
		return nil
	}
	return &ExecutionError{Command: failed[0].cmd, Err: fmt.Errorf("%d deferred process(es) failed", len(failed))}
}

func (e *Executor) renderTemplate(source, destination string) error {
	t := model.NewTemplate(source, destination)
	content, err := t.Content()
	if err != nil {
		return err
	}
	rendered, err := tmpl.Render(content, e.env.GetAllValues())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("creating template destination directory: %w", err)
	}
	return os.WriteFile(destination, []byte(rendered), 0o644)
}

// runBash renders an entire script file through the Template Engine into a
// 0700 temp file, executes it, and removes the temp file on every exit
// path.
func (e *Executor) runBash(cmd scriptparser.Command) error {
	content, err := os.ReadFile(cmd.BashPath)
	if err != nil {
		return err
	}
	rendered, err := tmpl.Render(string(content), e.env.GetAllValues())
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "shelltab-bash-*.sh")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := tmpFile.WriteString(rendered); err != nil {
		tmpFile.Close() //nolint:errcheck
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o700); err != nil {
		return err
	}

	proc, err := e.env.CreateProcess(tmpPath)
	if err != nil {
		return err
	}
	proc.Stdout = &logWriter{logger: e.logger}
	proc.Stderr = &logWriter{logger: e.logger, isErr: true}
	return proc.Run()
}

// logWriter adapts a ScriptLogger into an io.Writer, splitting whatever
// it's given into lines so each Log call carries one line of output.
type logWriter struct {
	logger logging.ScriptLogger
	isErr  bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range splitLines(string(p)) {
		if line == "" {
			continue
		}
		w.logger.Log(logging.LogMessage{Text: line, IsErr: w.isErr})
	}
	return len(p), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
