package executor

import (
	"context"
	"reflect"

	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/value"
)

// SourceEventStream is a lazy, cancellable, possibly infinite sequence of
// events produced by a subscription's root field, per the
// CreateSourceEventStream algorithm. It's deliberately minimal: an event
// source can be a channel, a poll loop, a message bus subscription,
// whatever a resolver wants to hand back, so long as it can be driven one
// event at a time.
type SourceEventStream interface {
	// Next blocks until the next event is available, returning it with ok
	// set to true; returns ok false once the stream has ended; or returns
	// a non-nil err if ctx is cancelled first.
	Next(ctx context.Context) (event interface{}, ok bool, err error)

	// Close releases the stream's resources. It's called once the
	// subscription is done being driven, whether because the stream ended
	// on its own or because the caller stopped consuming it early.
	Close()
}

// ChannelSourceEventStream adapts a Go channel of any element type into a
// SourceEventStream, for the common case of a subscribe resolver backed by
// a fan-out channel.
type ChannelSourceEventStream struct {
	// EventChannel is a channel of any element type, read via reflection
	// so a resolver can return whatever event type it likes.
	EventChannel interface{}

	// Stop, if set, is called once the stream is no longer needed, so
	// the producer can stop sending and close the channel.
	Stop func()
}

func (s *ChannelSourceEventStream) Close() {
	if s.Stop != nil {
		s.Stop()
	}
}

func (s *ChannelSourceEventStream) Next(ctx context.Context) (interface{}, bool, error) {
	cases := []reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(s.EventChannel)},
	}
	chosen, recv, recvOK := reflect.Select(cases)
	if chosen == 0 {
		return nil, false, ctx.Err()
	}
	if !recvOK {
		return nil, false, nil
	}
	return recv.Interface(), true, nil
}

// Subscribe resolves the root subscription field of a request (the
// CreateSourceEventStream algorithm) and returns the resulting source event
// stream. If the resolver returned a channel rather than a SourceEventStream
// directly, it's wrapped in a ChannelSourceEventStream.
func Subscribe(ctx context.Context, r *Request) (SourceEventStream, *Error) {
	e, err := newExecutor(ctx, r)
	if err != nil {
		return nil, err
	}
	if e.Operation.OperationType == nil || e.Operation.OperationType.Value != "subscription" {
		return nil, newError(e.Operation, "A subscription operation is required.")
	}
	return e.createSourceEventStream(r.InitialValue)
}

func (e *executor) createSourceEventStream(initialValue interface{}) (SourceEventStream, *Error) {
	subscriptionType := e.Schema.SubscriptionType()
	if !schema.IsObjectType(subscriptionType) {
		return nil, newError(e.Operation, "This schema cannot perform subscriptions.")
	}

	groupedFieldSet := e.collectFields(subscriptionType, e.Operation.SelectionSet.Selections)
	if groupedFieldSet.Len() != 1 {
		return nil, newError(e.Operation.SelectionSet, "Subscriptions must contain exactly one root field selection.")
	}

	item := groupedFieldSet.Items()[0]
	fields := item.Fields
	field := fields[0]
	fieldName := field.Name.Name
	fieldDef := subscriptionType.GetField(fieldName, e.Features)
	if fieldDef == nil {
		return nil, newError(field, "Undefined root subscription field.")
	}
	argumentValues, err := coerceArgumentValues(field, fieldDef.Arguments, field.Arguments, e.VariableValues)
	if err != nil {
		return nil, err
	}

	resolvedValue, resolveErr := fieldDef.Resolve(&schema.FieldContext{
		Context:     e.Context,
		Schema:      e.Schema,
		Object:      initialValue,
		Arguments:   argumentValues,
		IsSubscribe: true,
	})
	if !isNil(resolveErr) {
		return nil, newFieldResolveError(fields, resolveErr, value.Path{item.Key})
	}

	switch v := resolvedValue.(type) {
	case SourceEventStream:
		return v, nil
	case nil:
		return nil, newErrorWithPath(field, value.Path{item.Key}, "The subscription field did not return an event stream.")
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Chan {
			return nil, newErrorWithPath(field, value.Path{item.Key}, "The subscription field did not return an event stream.")
		}
		return &ChannelSourceEventStream{EventChannel: v}, nil
	}
}

// MapSourceToResponse drives stream (the MapSourceToResponse algorithm),
// executing the subscription's selection set once per event with the event
// as the root value and invoking onResponse with the result. It returns
// when the stream ends or ctx is cancelled; a single event's execution
// errors are reported through onResponse rather than stopping the stream.
func MapSourceToResponse(ctx context.Context, r *Request, stream SourceEventStream, onResponse func(*value.Map, []*Error)) error {
	defer stream.Close()
	for {
		event, ok, err := stream.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		eventRequest := &Request{
			Document:                r.Document,
			Schema:                  r.Schema,
			OperationName:           r.OperationName,
			VariableValues:          r.VariableValues,
			InitialValue:            event,
			Features:                r.Features,
			IdleHandler:             r.IdleHandler,
			FieldResolutionObserver: r.FieldResolutionObserver,
		}

		var finishExecution func([]error)
		if r.OperationExecutionObserver != nil {
			finishExecution = r.OperationExecutionObserver()
		}
		data, errs := ExecuteRequest(ctx, eventRequest)
		if finishExecution != nil {
			genericErrs := make([]error, len(errs))
			for i, err := range errs {
				genericErrs[i] = err
			}
			finishExecution(genericErrs)
		}
		onResponse(data, errs)
	}
}
