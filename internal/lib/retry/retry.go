package retry

import (
	"context"
	"errors"
	"time"
)

const defaultRetries = 3

type PermanentError struct {
	err error
}

func (e PermanentError) Error() string {
	return e.err.Error()
}

func (e PermanentError) Unwrap() error {
	return e.err
}

// NewPermanentError marks err as not worth retrying.
func NewPermanentError(err error) error {
	return PermanentError{err: err}
}

type Option func(*options)

type options struct {
	ctx       context.Context
	retries   int
	delayFunc func(attempt int, err error) time.Duration
}

// WithRetries sets how many times f is called again after the first failure.
func WithRetries(retries int) Option {
	return func(o *options) {
		o.retries = retries
	}
}

// WithDelayFunc decides how long to wait before each retry. Without it
// every retry waits a second.
func WithDelayFunc(fn func(attempt int, err error) time.Duration) Option {
	return func(o *options) {
		o.delayFunc = fn
	}
}

// WithContext stops waiting between attempts once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func (o *options) delay(attempt int, err error) time.Duration {
	if o.delayFunc != nil {
		return o.delayFunc(attempt, err)
	}
	return time.Second
}

func Do(f func() error, opts ...Option) error {
	_, err := Do2(func() (struct{}, error) {
		return struct{}{}, f()
	}, opts...)
	return err
}

func Do2[T any](f func() (T, error), opts ...Option) (T, error) {
	o := &options{
		ctx:     context.Background(),
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(o)
	}

	var zero T
	for attempt := 0; ; attempt++ {
		v, err := f()
		if err == nil {
			return v, nil
		}

		var perr PermanentError
		if errors.As(err, &perr) {
			return zero, perr.Unwrap()
		}

		if attempt >= o.retries {
			return zero, err
		}

		select {
		case <-o.ctx.Done():
			return zero, errors.Join(o.ctx.Err(), err)
		case <-time.After(o.delay(attempt, err)):
		}
	}
}
