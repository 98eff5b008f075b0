package wm

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/state"
)

// WindowNotFoundError reports an operation on a window we don't know.
type WindowNotFoundError struct {
	ID state.WindowID
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("window not found: %d", e.ID)
}

// WorkspaceNotFoundError reports an unknown workspace name.
type WorkspaceNotFoundError struct {
	Name string
}

func (e *WorkspaceNotFoundError) Error() string {
	return fmt.Sprintf("workspace not found: %s", e.Name)
}

// ScreenNotFoundError reports an unknown screen id, name, or alias.
type ScreenNotFoundError struct {
	Name string
}

func (e *ScreenNotFoundError) Error() string {
	return fmt.Sprintf("screen not found: %s", e.Name)
}

// OperationError reports an operation that could not be carried out.
type OperationError struct {
	Msg string
}

func (e *OperationError) Error() string { return e.Msg }

func opErrorf(format string, args ...any) error {
	return &OperationError{Msg: fmt.Sprintf(format, args...)}
}
