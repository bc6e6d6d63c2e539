package logging

import "github.com/shelltab/shelltab/internal/model"

// LogMessage is one line of command output, tagged with whether it came
// from stderr.
type LogMessage struct {
	Text  string
	IsErr bool
}

// ScriptLogger is the interface the Process Executor drives. Any
// implementation is acceptable to the executor; it only requires that calls
// arrive in dispatch order.
type ScriptLogger interface {
	StartScript(script model.Script)
	FinishScript(success bool)
	LogStart(kind, payload, line string, ignoresError bool, index, total int)
	Log(msg LogMessage)
	LogWait()
	LogSuccess()
	LogFailure(err error)
	Warn(text string)
}

// FileScriptLogger is the default ScriptLogger, backed by a Logger writing
// to a run log file (and optionally mirroring to the terminal).
type FileScriptLogger struct {
	logger *Logger
}

// NewFileScriptLogger wraps an already-constructed Logger.
func NewFileScriptLogger(logger *Logger) *FileScriptLogger {
	return &FileScriptLogger{logger: logger}
}

func (f *FileScriptLogger) StartScript(script model.Script) {
	f.logger.LogColored(ansiDim, "starting %s", script.Name())
}

func (f *FileScriptLogger) FinishScript(success bool) {
	if success {
		f.logger.LogColored(ansiGreen, "finished: ok")
		return
	}
	f.logger.LogColored(ansiRed, "finished: failed")
}

func (f *FileScriptLogger) LogStart(kind, payload, line string, ignoresError bool, index, total int) {
	suffix := ""
	if ignoresError {
		suffix = " (ignoring errors)"
	}
	f.logger.Log("[%d/%d] %s: %s%s", index, total, kind, payload, suffix)
	_ = line
}

func (f *FileScriptLogger) Log(msg LogMessage) {
	if msg.IsErr {
		f.logger.LogColored(ansiRed, "%s", msg.Text)
		return
	}
	f.logger.Log("%s", msg.Text)
}

func (f *FileScriptLogger) LogWait() {
	f.logger.LogColored(ansiDim, "waiting for deferred processes")
}

func (f *FileScriptLogger) LogSuccess() {
	f.logger.LogColored(ansiGreen, "ok")
}

func (f *FileScriptLogger) LogFailure(err error) {
	f.logger.LogColored(ansiRed, "failed: %v", err)
}

func (f *FileScriptLogger) Warn(text string) {
	f.logger.LogColored(ansiYellow, "warning: %s", text)
}

// Close closes the underlying log file.
func (f *FileScriptLogger) Close() error {
	return f.logger.Close()
}
