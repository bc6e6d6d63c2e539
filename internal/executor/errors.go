package executor

import (
	"fmt"

	"github.com/shelltab/shelltab/internal/scriptparser"
)

// ExecutionError reports a command that aborted the script: a synchronous
// process or template that failed without ignoreError, or a batch of
// deferred processes that failed at drain time.
type ExecutionError struct {
	Command scriptparser.Command
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s command failed: %v", e.Command.Kind, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// UnknownCommandError reports a Command whose Kind the executor doesn't
// recognise — this should only happen if scriptparser emits a new kind the
// executor hasn't been taught to dispatch.
type UnknownCommandError struct {
	Kind scriptparser.CommandKind
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command kind %v", e.Kind)
}
