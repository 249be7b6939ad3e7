package executor

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/validator"
	"github.com/nilsbr/gqlcore/value"
)

// Location identifies a character within a query's source text.
type Location struct {
	Line   int
	Column int
}

// Error represents an execution error: a coercion failure, a resolver
// failure, or a request-level failure (no matching operation, wrong root
// type, etc). For a resolver failure, Message is the resolver error's text
// as returned; other messages are short engine-generated descriptions.
type Error struct {
	Message string

	// Nearly all errors have locations, pointing to one or more relevant
	// query tokens.
	Locations []Location

	// Path is set whenever the error occurred while resolving a
	// particular field.
	Path []interface{}

	originalError error
}

func (err *Error) Error() string {
	return err.Message
}

// Unwrap returns the original error returned by a resolver, if this Error
// wraps one.
func (err *Error) Unwrap() error {
	return err.originalError
}

func newError(node ast.Node, format string, args ...interface{}) *Error {
	return newErrorWithPath(node, nil, format, args...)
}

func newErrorWithPath(node ast.Node, path value.Path, format string, args ...interface{}) *Error {
	ret := &Error{
		Message: fmt.Sprintf(format, args...),
	}
	if node != nil {
		ret.Locations = []Location{{
			Line:   node.Position().Line,
			Column: node.Position().Column,
		}}
	}
	if path != nil {
		ret.Path = path.Slice()
	}
	return ret
}

func newFieldResolveError(fields []*ast.Field, err error, path value.Path) *Error {
	locations := make([]Location, len(fields))
	for i, field := range fields {
		locations[i].Line = field.Position().Line
		locations[i].Column = field.Position().Column
	}
	return &Error{
		Message:       err.Error(),
		Locations:     locations,
		Path:          path.Slice(),
		originalError: err,
	}
}

func newErrorWithValidatorError(err *validator.Error) *Error {
	if err == nil {
		return nil
	}
	ret := &Error{
		Message: err.Message,
	}
	for _, node := range err.Nodes {
		if node == nil {
			continue
		}
		pos := node.Position()
		ret.Locations = append(ret.Locations, Location{Line: pos.Line, Column: pos.Column})
	}
	return ret
}
