// Package gqlcore is a convenience facade over the ast, parser, schema,
// validator, and executor packages: Parse a query, BuildSchema from SDL,
// Validate and Execute a request, or Subscribe to one, without wiring the
// lower-level packages together yourself.
package gqlcore

import (
	"context"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/executor"
	"github.com/nilsbr/gqlcore/instrumentation"
	"github.com/nilsbr/gqlcore/parser"
	"github.com/nilsbr/gqlcore/persistedquery"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/validator"
	"github.com/nilsbr/gqlcore/value"
)

// Schema represents a GraphQL schema.
type Schema = schema.Schema

// SchemaDefinition defines a GraphQL schema programmatically, as an
// alternative to BuildSchema.
type SchemaDefinition = schema.SchemaDefinition

// FeatureSet gates which schema-defined fields, directives, and values are
// visible to a particular request, for schemas that stage rollouts behind
// feature flags.
type FeatureSet = schema.FeatureSet

// ValidatorRule is a validation rule that can be supplied to Validate in
// addition to the standard rules.
type ValidatorRule = validator.Rule

// ResolveResult represents the result of an asynchronous field resolver,
// delivered through a ResolvePromise.
type ResolveResult = executor.ResolveResult

// ResolvePromise lets a resolver return before its value is known. Returning
// one requires the request to have an IdleHandler: whenever execution can't
// proceed without a pending promise's result, the idle handler is invoked,
// and it must deliver a result to at least one outstanding promise before
// returning.
type ResolvePromise = executor.ResolvePromise

// SourceEventStream is the event source a subscription's root field resolves
// to; see Subscribe.
type SourceEventStream = executor.SourceEventStream

// ChannelSourceEventStream adapts a Go channel into a SourceEventStream.
type ChannelSourceEventStream = executor.ChannelSourceEventStream

// Instrumentation receives lifecycle events for a request's parsing,
// validation, operation execution, and field resolution.
type Instrumentation = instrumentation.Instrumentation

// NopInstrumentation is an Instrumentation that observes nothing.
type NopInstrumentation = instrumentation.NopInstrumentation

// LoggingInstrumentation is an Instrumentation that logs each stage's
// duration and outcome through a logrus.FieldLogger.
type LoggingInstrumentation = instrumentation.LoggingInstrumentation

// PersistedQueryStore resolves a persisted-query id to a query document; see
// Request.PersistedQueryID.
type PersistedQueryStore = persistedquery.Store

// NewSchema validates a schema definition and builds a Schema from it.
func NewSchema(def *SchemaDefinition) (*Schema, error) {
	return schema.New(def)
}

// BuildSchema parses src as an SDL document and builds a Schema from it.
func BuildSchema(src string) (*Schema, error) {
	return schema.BuildSchema(src)
}

// ExtendSchema parses src as an SDL document of extensions and/or additional
// definitions, and returns a new Schema layering them onto s.
func ExtendSchema(s *Schema, src string) (*Schema, error) {
	return schema.ExtendSchema(s, src)
}

// Location identifies a character within a query's source text.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error represents a GraphQL error as defined by the response format of the
// GraphQL spec.
type Error struct {
	Message   string        `json:"message"`
	Locations []Location    `json:"locations,omitempty"`
	Path      []interface{} `json:"path,omitempty"`

	// Extensions is populated when a resolver returns an error that
	// implements ExtendedError.
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func (err *Error) Error() string {
	return err.Message
}

// ExtendedError lets a resolver attach structured data to a GraphQL error.
// If a resolver returns an error implementing this interface, the error's
// Extensions field is populated from it.
type ExtendedError interface {
	error
	Extensions() map[string]interface{}
}

// Response is the result of executing a GraphQL request, serializable
// directly to the wire format the GraphQL spec describes.
type Response struct {
	Data   interface{} `json:"data,omitempty"`
	Errors []*Error    `json:"errors,omitempty"`
}

// Request defines all of the inputs required to execute a GraphQL
// operation.
type Request struct {
	Context context.Context

	// Query is parsed (and Document populated from it) if Document isn't
	// already set.
	Query string

	// Document can be provided instead of Query when the caller has
	// already parsed and validated the operation, to skip doing so twice.
	Document *ast.Document

	// PersistedQueryID and PersistedQueries are an alternative to Query:
	// if Document is unset and Query is empty but PersistedQueryID isn't,
	// the document is resolved via PersistedQueries.Lookup instead of
	// being parsed from source text.
	PersistedQueryID string
	PersistedQueries persistedquery.Store

	Schema         *Schema
	OperationName  string
	VariableValues map[string]interface{}
	Extensions     map[string]interface{}
	InitialValue   interface{}
	Features       FeatureSet
	IdleHandler    func()

	// Instrumentation observes this request's lifecycle. NopInstrumentation
	// is used if this is nil.
	Instrumentation Instrumentation
}

func (r *Request) instrumentation() Instrumentation {
	if r.Instrumentation != nil {
		return r.Instrumentation
	}
	return NopInstrumentation{}
}

func (r *Request) executorRequest(doc *ast.Document) *executor.Request {
	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}
	instr := r.instrumentation()
	return &executor.Request{
		Document:       doc,
		Schema:         r.Schema,
		OperationName:  r.OperationName,
		VariableValues: r.VariableValues,
		InitialValue:   r.InitialValue,
		Features:       r.Features,
		IdleHandler:    r.IdleHandler,
		FieldResolutionObserver: func(fieldName string, path []interface{}, arguments map[string]interface{}) func(interface{}, error) {
			finish := instr.FieldResolution(ctx, &instrumentation.FieldInfo{
				FieldName: fieldName,
				Path:      path,
				Arguments: arguments,
			})
			return finish
		},
		OperationExecutionObserver: func() func([]error) {
			return instr.OperationExecution(ctx, r.OperationName)
		},
	}
}

// ValidateCost returns a ValidatorRule that computes the cost of the named
// operation (or the document's sole operation, if operationName is "") and
// reports an error if it exceeds max. If actual is non-nil, it's set to the
// computed cost regardless of whether it exceeded max. defaultCost is used
// for any field that doesn't declare its own FieldDefinition.Cost.
func ValidateCost(operationName string, variableValues map[string]interface{}, max int, actual *int, defaultCost schema.FieldCost) ValidatorRule {
	return validator.ValidateCost(operationName, variableValues, max, actual, defaultCost)
}

// IsSubscription returns true if the operation with the given name (or the
// document's sole operation, if operationName is "") is a subscription.
func IsSubscription(doc *ast.Document, operationName string) bool {
	return executor.IsSubscription(doc, operationName)
}

func locationsFromParser(loc parser.Error) []Location {
	return []Location{{Line: loc.Line, Column: loc.Column}}
}

func locationsFromValidator(locs []ast.Node) []Location {
	locations := make([]Location, 0, len(locs))
	for _, node := range locs {
		if node == nil {
			continue
		}
		pos := node.Position()
		locations = append(locations, Location{Line: pos.Line, Column: pos.Column})
	}
	return locations
}

// Parse parses and validates query against s, returning the resulting
// document or a set of syntax/validation errors.
func Parse(query string, s *Schema, features FeatureSet, additionalRules ...ValidatorRule) (*ast.Document, []*Error) {
	doc, parseErrs := parser.ParseDocument([]byte(query))
	if len(parseErrs) > 0 {
		errors := make([]*Error, len(parseErrs))
		for i, err := range parseErrs {
			errors[i] = &Error{
				Message:   "Syntax error: " + err.Error(),
				Locations: locationsFromParser(*err),
			}
		}
		return nil, errors
	}
	if validationErrs := validator.ValidateDocument(doc, s, features, additionalRules...); len(validationErrs) > 0 {
		errors := make([]*Error, len(validationErrs))
		for i, err := range validationErrs {
			errors[i] = &Error{
				Message:   err.Message,
				Locations: locationsFromValidator(err.Nodes),
			}
		}
		return nil, errors
	}
	return doc, nil
}

// Validate validates an already-parsed document against s.
func Validate(doc *ast.Document, s *Schema, features FeatureSet, additionalRules ...ValidatorRule) []*Error {
	validationErrs := validator.ValidateDocument(doc, s, features, additionalRules...)
	if len(validationErrs) == 0 {
		return nil
	}
	errors := make([]*Error, len(validationErrs))
	for i, err := range validationErrs {
		errors[i] = &Error{
			Message:   err.Message,
			Locations: locationsFromValidator(err.Nodes),
		}
	}
	return errors
}

func newErrorFromExecutorError(err *executor.Error) *Error {
	locations := make([]Location, len(err.Locations))
	for i, loc := range err.Locations {
		locations[i] = Location{Line: loc.Line, Column: loc.Column}
	}
	ret := &Error{
		Message:   err.Message,
		Locations: locations,
		Path:      err.Path,
	}
	if ext, ok := err.Unwrap().(ExtendedError); ok {
		ret.Extensions = ext.Extensions()
	}
	return ret
}

func (r *Request) document() (*ast.Document, []*Error) {
	if r.Document != nil {
		return r.Document, nil
	}

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}
	instr := r.instrumentation()

	var doc *ast.Document
	var errs []*Error
	if r.Query == "" && r.PersistedQueryID != "" && r.PersistedQueries != nil {
		result, lookupErrs := r.persistedQueryDocument()
		if len(lookupErrs) > 0 {
			return nil, lookupErrs
		}
		// A store may resolve its own schema (e.g. LookupWithSchema) and
		// validate against it up front; one that doesn't still gets
		// validated here, against r.Schema, same as a freshly parsed
		// query. Either way a persisted document is never trusted
		// un-validated just because it was looked up rather than parsed.
		if result.schema == nil {
			finishValidation := instr.QueryValidation(ctx, result.doc)
			if validationErrs := validator.ValidateDocument(result.doc, r.Schema, r.Features); len(validationErrs) > 0 {
				errs = make([]*Error, len(validationErrs))
				genericErrs := make([]error, len(validationErrs))
				for i, err := range validationErrs {
					errs[i] = &Error{
						Message:   err.Message,
						Locations: locationsFromValidator(err.Nodes),
					}
					genericErrs[i] = err
				}
				finishValidation(genericErrs)
				return nil, errs
			}
			finishValidation(nil)
		}
		doc = result.doc
	} else {
		finishParsing := instr.QueryParsing(ctx)
		parsed, parseErr := parser.ParseDocument([]byte(r.Query))
		if len(parseErr) > 0 {
			errs = make([]*Error, len(parseErr))
			for i, err := range parseErr {
				errs[i] = &Error{
					Message:   "Syntax error: " + err.Error(),
					Locations: locationsFromParser(*err),
				}
			}
			finishParsing(nil, errs[0])
			return nil, errs
		}
		finishParsing(parsed, nil)

		finishValidation := instr.QueryValidation(ctx, parsed)
		if validationErrs := validator.ValidateDocument(parsed, r.Schema, r.Features); len(validationErrs) > 0 {
			errs = make([]*Error, len(validationErrs))
			genericErrs := make([]error, len(validationErrs))
			for i, err := range validationErrs {
				errs[i] = &Error{
					Message:   err.Message,
					Locations: locationsFromValidator(err.Nodes),
				}
				genericErrs[i] = err
			}
			finishValidation(genericErrs)
			return nil, errs
		}
		finishValidation(nil)
		doc = parsed
	}
	return doc, errs
}

// persistedQueryLookup is the part of a persistedquery.LookupResult that
// survived translation to a usable document: the document itself, plus the
// schema it was already validated against, if the store did so itself.
type persistedQueryLookup struct {
	doc    *ast.Document
	schema *Schema
}

func (r *Request) persistedQueryDocument() (persistedQueryLookup, []*Error) {
	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := r.PersistedQueries.Lookup(ctx, r.PersistedQueryID)
	if err != nil {
		return persistedQueryLookup{}, []*Error{{Message: "Persisted query lookup failed: " + err.Error()}}
	}
	switch result.Kind {
	case persistedquery.Unknown:
		return persistedQueryLookup{}, []*Error{{Message: "PersistedQueryNotFound"}}
	case persistedquery.ParseError:
		return persistedQueryLookup{}, []*Error{{
			Message:   "Syntax error: " + result.ParseErr.Error(),
			Locations: locationsFromParser(*result.ParseErr),
		}}
	case persistedquery.ValidateErrors:
		errors := make([]*Error, len(result.ValidateErrs))
		for i, verr := range result.ValidateErrs {
			errors[i] = &Error{
				Message:   verr.Message,
				Locations: locationsFromValidator(verr.Nodes),
			}
		}
		return persistedQueryLookup{}, errors
	default:
		return persistedQueryLookup{doc: result.Document, schema: result.Schema}, nil
	}
}

// Execute executes a request. If Document isn't set, Query is parsed and
// validated first.
func Execute(r *Request) *Response {
	doc, errors := r.document()
	if len(errors) > 0 {
		return &Response{Errors: errors}
	}

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}

	finishExecution := r.instrumentation().OperationExecution(ctx, r.OperationName)
	data, errs := executor.ExecuteRequest(ctx, r.executorRequest(doc))
	resp := &Response{Data: data}
	genericErrs := make([]error, len(errs))
	for i, err := range errs {
		resp.Errors = append(resp.Errors, newErrorFromExecutorError(err))
		genericErrs[i] = err
	}
	finishExecution(genericErrs)
	return resp
}

// Subscribe resolves the root field of a subscription operation (use
// IsSubscription to check first) and returns the resulting event stream. Use
// executor.MapSourceToResponse, or drive the stream directly, to turn events
// into responses via Execute-equivalent per-event execution.
func Subscribe(r *Request) (SourceEventStream, []*Error) {
	doc, errors := r.document()
	if len(errors) > 0 {
		return nil, errors
	}

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}

	stream, err := executor.Subscribe(ctx, r.executorRequest(doc))
	if err != nil {
		return nil, []*Error{newErrorFromExecutorError(err)}
	}
	return stream, nil
}

// Graphql is a single-call convenience wrapper: it subscribes and maps each
// event to a Response when the request names a subscription operation, or
// executes once and invokes onResponse a single time otherwise. It returns
// once the subscription's stream ends or, for a query/mutation, after the one
// call to onResponse.
func Graphql(r *Request, onResponse func(*Response)) error {
	doc, errors := r.document()
	if len(errors) > 0 {
		onResponse(&Response{Errors: errors})
		return nil
	}
	r.Document = doc

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if !IsSubscription(doc, r.OperationName) {
		onResponse(Execute(r))
		return nil
	}

	stream, execErr := executor.Subscribe(ctx, r.executorRequest(doc))
	if execErr != nil {
		onResponse(&Response{Errors: []*Error{newErrorFromExecutorError(execErr)}})
		return nil
	}

	return executor.MapSourceToResponse(ctx, r.executorRequest(doc), stream, func(data *value.Map, errs []*executor.Error) {
		resp := &Response{Data: data}
		for _, err := range errs {
			resp.Errors = append(resp.Errors, newErrorFromExecutorError(err))
		}
		onResponse(resp)
	})
}
