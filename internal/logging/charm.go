package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/shelltab/shelltab/internal/model"
)

// Charm is the terminal-facing ScriptLogger implementation, built on
// charmbracelet/log instead of hand-rolled ANSI. It's meant to be wired
// alongside a FileScriptLogger (via Multi) rather than used standalone, so a
// run always has a durable file copy even when stdout isn't a terminal.
type Charm struct {
	logger *log.Logger
}

// NewCharm builds a Charm writing to w, with the same timestamp style the
// CLI's own charmbracelet/log logger uses.
func NewCharm(w io.Writer) *Charm {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05 01/02/2006",
	})
	return &Charm{logger: l}
}

func (c *Charm) StartScript(script model.Script) {
	c.logger.Info("starting", "script", script.Name())
}

func (c *Charm) FinishScript(success bool) {
	if success {
		c.logger.Info("finished", "result", "ok")
		return
	}
	c.logger.Error("finished", "result", "failed")
}

func (c *Charm) LogStart(kind, payload, line string, ignoresError bool, index, total int) {
	_ = line
	if ignoresError {
		c.logger.Info(fmt.Sprintf("[%d/%d] %s", index, total, kind), "cmd", payload, "ignoreError", true)
		return
	}
	c.logger.Info(fmt.Sprintf("[%d/%d] %s", index, total, kind), "cmd", payload)
}

func (c *Charm) Log(msg LogMessage) {
	if msg.IsErr {
		c.logger.Error(msg.Text)
		return
	}
	c.logger.Print(msg.Text)
}

func (c *Charm) LogWait() {
	c.logger.Info("waiting for deferred processes")
}

func (c *Charm) LogSuccess() {
	c.logger.Info("ok")
}

func (c *Charm) LogFailure(err error) {
	c.logger.Error("failed", "err", err)
}

func (c *Charm) Warn(text string) {
	c.logger.Warn(text)
}

// Multi fans every ScriptLogger call out to each logger in order. Used to
// drive a durable file logger and a terminal-facing Charm logger from one
// Executor without the executor itself knowing there are two.
type Multi struct {
	loggers []ScriptLogger
}

// NewMulti builds a Multi tee-ing to loggers.
func NewMulti(loggers ...ScriptLogger) *Multi {
	return &Multi{loggers: loggers}
}

func (m *Multi) StartScript(script model.Script) {
	for _, l := range m.loggers {
		l.StartScript(script)
	}
}

func (m *Multi) FinishScript(success bool) {
	for _, l := range m.loggers {
		l.FinishScript(success)
	}
}

func (m *Multi) LogStart(kind, payload, line string, ignoresError bool, index, total int) {
	for _, l := range m.loggers {
		l.LogStart(kind, payload, line, ignoresError, index, total)
	}
}

func (m *Multi) Log(msg LogMessage) {
	for _, l := range m.loggers {
		l.Log(msg)
	}
}

func (m *Multi) LogWait() {
	for _, l := range m.loggers {
		l.LogWait()
	}
}

func (m *Multi) LogSuccess() {
	for _, l := range m.loggers {
		l.LogSuccess()
	}
}

func (m *Multi) LogFailure(err error) {
	for _, l := range m.loggers {
		l.LogFailure(err)
	}
}

func (m *Multi) Warn(text string) {
	for _, l := range m.loggers {
		l.Warn(text)
	}
}
