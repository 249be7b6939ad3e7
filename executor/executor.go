// Package executor implements GraphQL request execution: collecting a
// selection set's fields against a concrete object type, resolving and
// completing each one, and assembling the result into a response value, per
// the query/mutation/subscription execution algorithms.
//
// Execution never spawns a goroutine on its own. A resolver that needs to
// do asynchronous work returns a ResolvePromise, and the request's
// IdleHandler is invoked whenever execution can't otherwise proceed until
// some previously returned promise is resolved. This keeps the executor
// usable from hosts with their own concurrency model (a worker pool, an
// event loop, whatever) without forcing one of its own on them.
package executor

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/executor/internal/future"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/schema/introspection"
	"github.com/nilsbr/gqlcore/value"
)

// ResolveResult represents the result of a field resolver. This type is
// generally used with ResolvePromise to pass around asynchronous results.
type ResolveResult struct {
	Value interface{}
	Error error
}

// ResolvePromise can be used to resolve fields asynchronously. A field's
// Resolve function may return a ResolvePromise instead of a value; if it
// does, the request must define an IdleHandler. Any time execution is
// unable to proceed, the idle handler is invoked, and before it returns a
// result must be sent to at least one previously returned ResolvePromise.
type ResolvePromise chan ResolveResult

// Request defines all of the inputs required to execute a GraphQL query,
// mutation, or a single subscription event.
type Request struct {
	Document       *ast.Document
	Schema         *schema.Schema
	OperationName  string
	VariableValues map[string]interface{}
	InitialValue   interface{}

	// Features gates which fields and types are visible to this request,
	// mirroring the gate applied during validation.
	Features schema.FeatureSet

	IdleHandler func()

	// FieldResolutionObserver, if set, is called immediately before each
	// field resolver invocation with the field's name, result path, and
	// coerced arguments; the func it returns is called with the
	// resolver's result once available. It's the hook instrumentation
	// packages use to time and log individual field resolutions.
	FieldResolutionObserver func(fieldName string, path []interface{}, arguments map[string]interface{}) func(result interface{}, err error)

	// OperationExecutionObserver, if set, is called immediately before an
	// operation is executed; the func it returns is called with the
	// resulting errors once execution finishes. ExecuteRequest itself
	// never calls it, since a single query or mutation's execution is
	// already wrapped by its caller; MapSourceToResponse calls it once
	// per subscription event, since each event's execution is otherwise
	// invisible to a caller driving the stream from outside.
	OperationExecutionObserver func() func(errs []error)
}

// ExecuteRequest executes a request, dispatching to the query, mutation, or
// single-event subscription algorithm according to the selected operation's
// type.
func ExecuteRequest(ctx context.Context, r *Request) (*value.Map, []*Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, []*Error{err}
	}
	switch opType := e.Operation.OperationType; {
	case opType == nil || opType.Value == "query":
		return e.executeQuery(r.InitialValue)
	case opType.Value == "mutation":
		return e.executeMutation(r.InitialValue)
	case opType.Value == "subscription":
		return e.executeSubscriptionEvent(r.InitialValue)
	}
	panic("unexpected operation type")
}

// IsSubscription reports whether the operation a request would select is a
// subscription.
func IsSubscription(doc *ast.Document, operationName string) bool {
	operation, err := GetOperation(doc, operationName)
	return err == nil && operation.OperationType != nil && operation.OperationType.Value == "subscription"
}

type executor struct {
	Context             context.Context
	Schema              *schema.Schema
	Features            schema.FeatureSet
	FragmentDefinitions map[string]*ast.FragmentDefinition
	VariableValues      map[string]interface{}
	Errors              []*Error
	Operation           *ast.OperationDefinition
	IdleHandler         func()

	// GroupedFieldSetCache memoizes collectFields, which is otherwise
	// called repeatedly with the same inputs throughout a query's
	// execution.
	GroupedFieldSetCache map[string]*GroupedFieldSet

	// CatchError handles errors for nullable fields. The closure is
	// built once on construction to avoid allocating it on every field.
	CatchError func(future.Result[any]) future.Result[any]

	FieldResolutionObserver func(fieldName string, path []interface{}, arguments map[string]interface{}) func(result interface{}, err error)
}

func newExecutor(ctx context.Context, r *Request) (*executor, *Error) {
	operation, err := GetOperation(r.Document, r.OperationName)
	if err != nil {
		return nil, err
	}
	coercedVariableValues, err := coerceVariableValues(r.Schema, operation, r.VariableValues)
	if err != nil {
		return nil, err
	}

	e := &executor{
		Context:                 ctx,
		Schema:                  r.Schema,
		Features:                r.Features,
		FragmentDefinitions:     map[string]*ast.FragmentDefinition{},
		VariableValues:          coercedVariableValues,
		Operation:               operation,
		IdleHandler:             r.IdleHandler,
		GroupedFieldSetCache:    map[string]*GroupedFieldSet{},
		FieldResolutionObserver: r.FieldResolutionObserver,
	}
	e.CatchError = func(r future.Result[any]) future.Result[any] {
		if r.IsErr() {
			e.Errors = append(e.Errors, r.Error.(*Error))
			r.Error = nil
		}
		return r
	}
	for _, def := range r.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			e.FragmentDefinitions[def.Name.Name] = def
		}
	}
	return e, nil
}

func (e *executor) executeQuery(initialValue interface{}) (*value.Map, []*Error) {
	queryType := e.Schema.QueryType()
	if !schema.IsObjectType(queryType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform queries.")}
	}
	data, err := wait(e, e.executeSelections(e.Operation.SelectionSet.Selections, queryType, initialValue, nil, false))
	if err != nil {
		e.Errors = append(e.Errors, err.(*Error))
		return nil, e.Errors
	} else if data != nil {
		return data, e.Errors
	}
	return nil, nil
}

func (e *executor) executeMutation(initialValue interface{}) (*value.Map, []*Error) {
	mutationType := e.Schema.MutationType()
	if !schema.IsObjectType(mutationType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform mutations.")}
	}
	data, err := wait(e, e.executeSelections(e.Operation.SelectionSet.Selections, mutationType, initialValue, nil, true))
	if err != nil {
		e.Errors = append(e.Errors, err.(*Error))
		return nil, e.Errors
	} else if data != nil {
		return data, e.Errors
	}
	return nil, nil
}

func (e *executor) executeSubscriptionEvent(initialValue interface{}) (*value.Map, []*Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if !schema.IsObjectType(subscriptionType) {
		return nil, []*Error{newError(e.Operation, "This schema cannot perform subscriptions.")}
	}
	data, err := wait(e, e.executeSelections(e.Operation.SelectionSet.Selections, subscriptionType, initialValue, nil, false))
	if err != nil {
		e.Errors = append(e.Errors, err.(*Error))
		return nil, e.Errors
	} else if data != nil {
		return data, e.Errors
	}
	return nil, nil
}

// wait drives f to completion by polling it (and invoking the idle handler
// between polls) until it's ready, blocking the caller's goroutine. It's
// only ever used at the outermost edge of execution, where there's no
// further work the caller could otherwise be doing.
func wait[T any](e *executor, f future.Future[T]) (T, error) {
	var result future.Result[T]
	done := false
	f = future.Map(f, func(r future.Result[T]) future.Result[T] {
		result = r
		done = true
		return r
	})
	f.Poll()
	for !done {
		if e.IdleHandler == nil {
			var zero T
			return zero, newError(nil, "No idle handler defined.")
		}
		e.IdleHandler()
		f.Poll()
	}
	return result.Value, result.Error
}

func (e *executor) executeSelections(selections []ast.Selection, objectType *schema.ObjectType, objectValue interface{}, path value.Path, forceSerial bool) future.Future[*value.Map] {
	groupedFieldSet := e.collectFields(objectType, selections)

	resultMap := value.NewMapWithLength(groupedFieldSet.Len())

	futures := make([]future.Future[any], 0, groupedFieldSet.Len())

	for i, item := range groupedFieldSet.Items() {
		responseKey := item.Key
		fields := item.Fields
		fieldName := fields[0].Name.Name

		if fieldName == "__typename" {
			resultMap.Set(i, responseKey, objectType.Name)
			continue
		}

		fieldDef := objectType.GetField(fieldName, e.Features)
		if fieldDef == nil && objectType == e.Schema.QueryType() {
			fieldDef = introspection.MetaFields[fieldName]
		}

		if fieldDef != nil {
			f := e.catchErrorIfNullable(fieldDef.Type, e.executeField(objectValue, fields, fieldDef, path.WithKey(responseKey)))
			if forceSerial {
				responseValue, err := wait(e, f)
				if err != nil {
					return future.Err[*value.Map](err)
				}
				resultMap.Set(i, responseKey, responseValue)
			} else {
				i := i
				responseKey := responseKey
				futures = append(futures, future.MapOk(f, func(responseValue any) any {
					resultMap.Set(i, responseKey, responseValue)
					return nil
				}))
			}
		}
	}

	return future.MapOk(future.After(futures...), func(struct{}) *value.Map {
		return resultMap
	})
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil()
}

func (e *executor) executeField(objectValue interface{}, fields []*ast.Field, fieldDef *schema.FieldDefinition, path value.Path) future.Future[any] {
	field := fields[0]
	argumentValues, coercionErr := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if coercionErr != nil {
		return future.Err[any](coercionErr)
	}
	if err := e.Context.Err(); err != nil {
		return future.Err[any](newFieldResolveError(fields, err, path))
	}

	var finishResolution func(interface{}, error)
	if e.FieldResolutionObserver != nil {
		finishResolution = e.FieldResolutionObserver(field.Name.Name, path.Slice(), argumentValues)
	}

	resolvedValue, err := fieldDef.Resolve(&schema.FieldContext{
		Context:   e.Context,
		Schema:    e.Schema,
		Object:    objectValue,
		Arguments: argumentValues,
	})
	if finishResolution != nil {
		finishResolution(resolvedValue, err)
	}
	if !isNil(err) {
		return future.Err[any](newFieldResolveError(fields, err, path))
	}
	if f, ok := resolvedValue.(ResolvePromise); ok {
		return future.Then(future.New(func() (future.Result[any], bool) {
			var result future.Result[any]
			select {
			case r := <-f:
				if !isNil(r.Error) {
					result.Error = r.Error
				} else {
					result.Value = r.Value
				}
				return result, true
			default:
				return result, false
			}
		}), func(r future.Result[any]) future.Future[any] {
			if r.IsOk() {
				return e.completeValue(fieldDef.Type, fields, r.Value, path)
			}
			return future.Err[any](newFieldResolveError(fields, r.Error, path))
		})
	}
	return e.completeValue(fieldDef.Type, fields, resolvedValue, path)
}

func (e *executor) catchErrorIfNullable(t schema.Type, f future.Future[any]) future.Future[any] {
	if schema.IsNonNullType(t) {
		return f
	}
	return future.Map(f, e.CatchError)
}

func (e *executor) completeValue(fieldType schema.Type, fields []*ast.Field, result interface{}, path value.Path) future.Future[any] {
	if nonNullType, ok := fieldType.(*schema.NonNullType); ok {
		return future.Map(e.completeValue(nonNullType.Type, fields, result, path), func(r future.Result[any]) future.Result[any] {
			if r.IsOk() && r.Value == nil {
				r.Error = newErrorWithPath(fields[0], path, "Null result for non-null field.")
			}
			return r
		})
	}

	if isNil(result) {
		return future.Ok[any](nil)
	}

	switch fieldType := fieldType.(type) {
	case *schema.ListType:
		result := reflect.ValueOf(result)
		if result.Kind() != reflect.Slice {
			return future.Err[any](newErrorWithPath(fields[0], path, "Result is not a list."))
		}
		innerType := fieldType.Type
		completedResult := make([]future.Future[any], result.Len())
		for i := range completedResult {
			completedResult[i] = e.catchErrorIfNullable(innerType, e.completeValue(innerType, fields, result.Index(i).Interface(), path.WithIndex(i)))
		}
		return future.MapOk(future.Join(completedResult...), func(l []interface{}) interface{} {
			return l
		})
	case *schema.ScalarType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return future.Err[any](newErrorWithPath(fields[0], path, "Unexpected result: %v", err))
		}
		return future.Ok(coerced)
	case *schema.EnumType:
		coerced, err := fieldType.CoerceResult(result)
		if err != nil {
			return future.Err[any](newErrorWithPath(fields[0], path, "Unexpected result: %v", err))
		}
		return future.Ok[any](coerced)
	case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
		var objectType *schema.ObjectType
		switch fieldType := fieldType.(type) {
		case *schema.ObjectType:
			objectType = fieldType
		case *schema.InterfaceType:
			for _, t := range e.Schema.InterfaceImplementations(fieldType.Name) {
				if t.IsTypeOf(result) {
					objectType = t
					break
				}
			}
		case *schema.UnionType:
			for _, t := range fieldType.MemberTypes {
				if t.IsTypeOf(result) {
					objectType = t
					break
				}
			}
		}
		if objectType == nil {
			return future.Err[any](newErrorWithPath(fields[0], path, "Unable to determine object type."))
		}
		return future.MapOk(e.executeSelections(mergeSelectionSets(fields), objectType, result, path, false), func(m *value.Map) interface{} {
			return m
		})
	}
	panic(fmt.Sprintf("unexpected field type: %T", fieldType))
}

func mergeSelectionSets(fields []*ast.Field) []ast.Selection {
	var selectionSet []ast.Selection
	for _, field := range fields {
		if field.SelectionSet == nil {
			continue
		}
		selectionSet = append(selectionSet, field.SelectionSet.Selections...)
	}
	return selectionSet
}

func (e *executor) collectFields(objectType *schema.ObjectType, selections []ast.Selection) *GroupedFieldSet {
	// collectFields can be called many times with the same inputs
	// throughout a query's execution, so its result is memoized.
	cacheKeyBytes := make([]byte, len(objectType.Name)+16*len(selections))
	copy(cacheKeyBytes, objectType.Name)
	for i, sel := range selections {
		pos := sel.Position()
		binary.LittleEndian.PutUint64(cacheKeyBytes[len(objectType.Name)+i*16:], uint64(pos.Line))
		binary.LittleEndian.PutUint64(cacheKeyBytes[len(objectType.Name)+i*16+8:], uint64(pos.Column))
	}
	cacheKey := string(cacheKeyBytes)

	if hit, ok := e.GroupedFieldSetCache[cacheKey]; ok {
		return hit
	}

	groupedFieldSet := NewGroupedFieldSetWithCapacity(len(selections))
	e.collectFieldsImpl(objectType, selections, nil, groupedFieldSet)
	e.GroupedFieldSetCache[cacheKey] = groupedFieldSet
	return groupedFieldSet
}

func (e *executor) collectFieldsImpl(objectType *schema.ObjectType, selections []ast.Selection, visitedFragments map[string]struct{}, groupedFields *GroupedFieldSet) {
	if visitedFragments == nil {
		visitedFragments = map[string]struct{}{}
	}
	for _, selection := range selections {
		skip := false
		for _, directive := range selection.SelectionDirectives() {
			if def := e.Schema.Directives()[directive.Name.Name]; def != nil && def.FieldCollectionFilter != nil {
				if arguments, err := coerceArgumentValues(directive, def.Arguments, directive.Arguments, e.VariableValues); err == nil && !def.FieldCollectionFilter(arguments) {
					skip = true
				}
			}
		}
		if skip {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			responseKey := selection.Name.Name
			if selection.Alias != nil {
				responseKey = selection.Alias.Name
			}
			groupedFields.Append(responseKey, selection)
		case *ast.FragmentSpread:
			fragmentSpreadName := selection.FragmentName.Name
			if _, ok := visitedFragments[fragmentSpreadName]; ok {
				continue
			}
			visitedFragments[fragmentSpreadName] = struct{}{}

			fragment := e.FragmentDefinitions[fragmentSpreadName]
			if fragment == nil {
				continue
			}

			fragmentType := schemaType(fragment.TypeCondition, e.Schema)
			if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
				continue
			}

			e.collectFieldsImpl(objectType, fragment.SelectionSet.Selections, visitedFragments, groupedFields)
		case *ast.InlineFragment:
			if selection.TypeCondition != nil {
				fragmentType := schemaType(selection.TypeCondition, e.Schema)
				if fragmentType == nil || !doesFragmentTypeApply(objectType, fragmentType) {
					continue
				}
			}

			e.collectFieldsImpl(objectType, selection.SelectionSet.Selections, visitedFragments, groupedFields)
		default:
			panic(fmt.Sprintf("unexpected selection type: %T", selection))
		}
	}
}

func doesFragmentTypeApply(objectType *schema.ObjectType, fragmentType schema.Type) bool {
	switch fragmentType := fragmentType.(type) {
	case *schema.ObjectType:
		return objectType.IsSameType(fragmentType)
	case *schema.InterfaceType:
		for _, impl := range objectType.ImplementedInterfaces {
			if impl.IsSameType(fragmentType) {
				return true
			}
		}
		return false
	case *schema.UnionType:
		for _, member := range fragmentType.MemberTypes {
			if member.IsSameType(objectType) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("unexpected fragment type: %T", fragmentType))
}

// GetOperation returns the operation selected by operationName. If
// operationName is "" and the document contains only one operation, it is
// returned. Otherwise the document must contain exactly one operation with
// the given name.
func GetOperation(doc *ast.Document, operationName string) (*ast.OperationDefinition, *Error) {
	var ret *ast.OperationDefinition
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.OperationDefinition); ok {
			if operationName == "" || (def.Name != nil && def.Name.Name == operationName) {
				if ret != nil {
					return nil, newError(def, "Multiple matching operations.")
				}
				ret = def
			}
		}
	}
	if ret == nil {
		return nil, newError(nil, "No matching operations.")
	}
	return ret, nil
}
