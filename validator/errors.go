package validator

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
)

// Error is a single validation failure, tied to the AST node(s) that
// caused it so a host can report a useful source location.
type Error struct {
	Message string
	Nodes   []ast.Node

	// isSecondary marks an error that's only emitted because an earlier,
	// unrelated failure prevented this rule from doing its job (e.g. a
	// field with no resolvable definition). Secondary errors are
	// discarded whenever at least one primary error exists, since
	// they're expected to duplicate whatever rule actually owns the
	// underlying problem.
	isSecondary bool
}

func (err *Error) Error() string {
	return err.Message
}

func newError(node ast.Node, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Nodes:   []ast.Node{node},
	}
}

func newErrorWithNodes(nodes []ast.Node, format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Nodes:   nodes,
	}
}

func newSecondaryError(node ast.Node, format string, args ...interface{}) *Error {
	return &Error{
		Message:     fmt.Sprintf(format, args...),
		Nodes:       []ast.Node{node},
		isSecondary: true,
	}
}
