// Package future implements a minimal, allocation-conscious future type
// used to drive field resolution without blocking the caller's goroutine.
// A Future[T] never spawns a goroutine on its own; it only ever makes
// progress when something calls Poll, which is how the executor's idle
// handler gets a chance to run between polls.
package future

// Result holds either a value of type T or an error.
type Result[T any] struct {
	Value T
	Error error
}

// IsOk reports whether r holds a value rather than an error.
func (r Result[T]) IsOk() bool {
	return r.Error == nil
}

// IsErr reports whether r holds an error.
func (r Result[T]) IsErr() bool {
	return r.Error != nil
}

// Future represents a result that will be available at some point in the
// future, similar in spirit to Rust's Future trait: nothing happens until
// it's polled.
type Future[T any] struct {
	result Result[T]
	poll   func() (Result[T], bool)
}

// New constructs a future from a poll function. When the future's value is
// ready, poll should return it alongside true. Otherwise it should return a
// zero value and false.
func New[T any](poll func() (Result[T], bool)) Future[T] {
	return Future[T]{poll: poll}
}

// IsReady reports whether the future's value is ready.
func (f Future[T]) IsReady() bool {
	return f.poll == nil
}

// Result returns the future's result. Only meaningful once IsReady is true.
func (f Future[T]) Result() Result[T] {
	return f.result
}

// Poll drives the future (and its dependencies) one step closer to ready.
func (f *Future[T]) Poll() {
	if f.poll != nil {
		if r, ok := f.poll(); ok {
			f.result = r
			f.poll = nil
		}
	}
}

// Ok returns a future that's immediately ready with the given value.
func Ok[T any](v T) Future[T] {
	return Future[T]{result: Result[T]{Value: v}}
}

// Err returns a future that's immediately ready with the given error.
func Err[T any](err error) Future[T] {
	return Future[T]{result: Result[T]{Error: err}}
}

// Map transforms a future's result, preserving its type.
func Map[T any](f Future[T], fn func(Result[T]) Result[T]) Future[T] {
	if f.IsReady() {
		f.result = fn(f.result)
		return f
	}
	fpoll := f.poll
	f.poll = func() (Result[T], bool) {
		if r, ok := fpoll(); ok {
			return fn(r), true
		}
		return Result[T]{}, false
	}
	return f
}

// MapOk transforms a future's value into a value of a possibly different
// type, short-circuiting an error result through unchanged.
func MapOk[T, U any](f Future[T], fn func(T) U) Future[U] {
	if f.IsReady() {
		r := f.Result()
		if r.IsErr() {
			return Err[U](r.Error)
		}
		return Ok(fn(r.Value))
	}
	fpoll := f.poll
	return Future[U]{
		poll: func() (Result[U], bool) {
			r, ok := fpoll()
			if !ok {
				return Result[U]{}, false
			}
			if r.IsErr() {
				return Result[U]{Error: r.Error}, true
			}
			return Result[U]{Value: fn(r.Value)}, true
		},
	}
}

// Then invokes fn once f resolves and returns a future that resolves when
// fn's returned future does, allowing futures to be chained.
func Then[T, U any](f Future[T], fn func(Result[T]) Future[U]) Future[U] {
	if f.IsReady() {
		return fn(f.Result())
	}
	fpoll := f.poll
	var then Future[U]
	var hasThen bool
	return Future[U]{
		poll: func() (Result[U], bool) {
			if !hasThen {
				if r, ok := fpoll(); ok {
					then = fn(r)
					hasThen = true
				}
			}
			if hasThen {
				then.Poll()
				return then.result, then.IsReady()
			}
			return Result[U]{}, false
		},
	}
}

// Join combines the values of multiple futures into a single future
// resolving to their values in order. If any future errors, the returned
// future resolves to that error as soon as it's known.
func Join[T any](fs ...Future[T]) Future[[]T] {
	results := make([]T, len(fs))
	ok := true
	for i, f := range fs {
		if f.IsReady() {
			if f.Result().IsErr() {
				return Err[[]T](f.Result().Error)
			}
			results[i] = f.Result().Value
		} else {
			ok = false
		}
	}
	if ok {
		return Ok(results)
	}
	pending := append([]Future[T]{}, fs...)
	return New(func() (Result[[]T], bool) {
		ok := true
		for i := range pending {
			pending[i].Poll()
			if pending[i].IsReady() {
				if pending[i].Result().IsErr() {
					return Result[[]T]{Error: pending[i].Result().Error}, true
				}
				results[i] = pending[i].Result().Value
			} else {
				ok = false
			}
		}
		if ok {
			return Result[[]T]{Value: results}, true
		}
		return Result[[]T]{}, false
	})
}

// After returns a future that resolves once every one of fs has resolved.
// It's equivalent to Join but discards the values, which is cheaper when
// the caller only cares about completion (e.g. because every future
// already wrote its result into a shared result map).
func After[T any](fs ...Future[T]) Future[struct{}] {
	ok := true
	for _, f := range fs {
		if f.IsReady() {
			if f.Result().IsErr() {
				return Err[struct{}](f.Result().Error)
			}
		} else {
			ok = false
		}
	}
	if ok {
		return Ok(struct{}{})
	}
	pending := append([]Future[T]{}, fs...)
	return New(func() (Result[struct{}], bool) {
		ok := true
		for i := range pending {
			pending[i].Poll()
			if pending[i].IsReady() {
				if pending[i].Result().IsErr() {
					return Result[struct{}]{Error: pending[i].Result().Error}, true
				}
			} else {
				ok = false
			}
		}
		if ok {
			return Result[struct{}]{}, true
		}
		return Result[struct{}]{}, false
	})
}
