// Package instrumentation defines hooks a host can use to observe a
// request's lifecycle: parsing, validation, operation execution, and
// individual field resolution. It's analogous to the before/after pairs
// graphql-java and Apollo Server expose for tracing and metrics.
package instrumentation

import (
	"context"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// Instrumentation receives lifecycle events for a request. Every method
// returns a "finish" func to call when the corresponding stage
// completes; callers should defer the returned func immediately so it still
// fires on a panic or early return. A nil Instrumentation is never passed to
// instrumented code; use NopInstrumentation where no observation is wanted.
type Instrumentation interface {
	// QueryParsing wraps lexing and parsing the raw query text into an AST.
	QueryParsing(ctx context.Context) func(doc *ast.Document, err error)

	// QueryValidation wraps validating a parsed document against a schema.
	QueryValidation(ctx context.Context, doc *ast.Document) func(errs []error)

	// OperationExecution wraps executing a single operation (query,
	// mutation, or one subscription event) from start to response.
	OperationExecution(ctx context.Context, operationName string) func(errs []error)

	// FieldResolution wraps a single field resolver call.
	FieldResolution(ctx context.Context, info *FieldInfo) func(result interface{}, err error)
}

// FieldInfo describes the field a FieldResolution call is about to resolve.
type FieldInfo struct {
	ParentType schema.NamedType
	FieldName  string
	Path       []interface{}
	Arguments  map[string]interface{}
}

// NopInstrumentation implements Instrumentation with no-ops, for the common
// case where nothing needs to observe execution.
type NopInstrumentation struct{}

func (NopInstrumentation) QueryParsing(ctx context.Context) func(*ast.Document, error) {
	return func(*ast.Document, error) {}
}

func (NopInstrumentation) QueryValidation(ctx context.Context, doc *ast.Document) func([]error) {
	return func([]error) {}
}

func (NopInstrumentation) OperationExecution(ctx context.Context, operationName string) func([]error) {
	return func([]error) {}
}

func (NopInstrumentation) FieldResolution(ctx context.Context, info *FieldInfo) func(interface{}, error) {
	return func(interface{}, error) {}
}

var _ Instrumentation = NopInstrumentation{}
