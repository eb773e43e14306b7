package hooks

import (
	"context"
	"errors"
	"fmt"
)

// Kind distinguishes fire-and-forget actions from value-transforming filters.
type Kind string

const (
	KindAction Kind = "action"
	KindFilter Kind = "filter"
)

const (
	// DefaultPriority matches the host's default ordering slot.
	DefaultPriority = 10
	// DefaultAcceptedArgs is the number of arguments passed when unspecified.
	DefaultAcceptedArgs = 1
)

// ErrUnknownMethod is returned when a callback names a method its target does not expose.
var ErrUnknownMethod = errors.New("unknown component method")

// Func is the signature every bound method exposes to the host. Filters return
// the transformed value; actions return nil.
type Func func(ctx context.Context, args ...any) (any, error)

// Component is a hook target that resolves its callable methods by name.
type Component interface {
	Method(name string) (Func, bool)
}

// Methods adapts a name → Func table to the Component interface.
type Methods map[string]Func

// Method makes Methods satisfy Component.
func (m Methods) Method(name string) (Func, bool) {
	fn, ok := m[name]
	return fn, ok && fn != nil
}

// Callback is the bound target/method pair handed to the dispatcher.
type Callback struct {
	Target Component
	Method string
}

// Invoke resolves the method on the target and calls it.
func (c Callback) Invoke(ctx context.Context, args ...any) (any, error) {
	if c.Target == nil {
		return nil, fmt.Errorf("%w: %s (nil target)", ErrUnknownMethod, c.Method)
	}
	fn, ok := c.Target.Method(c.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, c.Method)
	}
	return fn(ctx, args...)
}

// Dispatcher is the host event system the registry flushes into.
type Dispatcher interface {
	RegisterAction(hook string, cb Callback, priority, acceptedArgs int)
	RegisterFilter(hook string, cb Callback, priority, acceptedArgs int)
}

// Registration is one pending binding.
type Registration struct {
	Kind         Kind
	Hook         string
	Target       Component
	Method       string
	Priority     int
	AcceptedArgs int
}

// Callback returns the target/method pair of the registration.
func (r Registration) Callback() Callback {
	return Callback{Target: r.Target, Method: r.Method}
}

// Option overrides a registration default.
type Option func(*Registration)

// WithPriority sets the host ordering slot; lower runs first.
func WithPriority(priority int) Option {
	return func(r *Registration) {
		r.Priority = priority
	}
}

// WithAcceptedArgs sets how many arguments the host passes to the callback.
func WithAcceptedArgs(n int) Option {
	return func(r *Registration) {
		r.AcceptedArgs = n
	}
}
