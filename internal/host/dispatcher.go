package host

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/hooks"
)

type listener struct {
	cb           hooks.Callback
	priority     int
	acceptedArgs int
}

// ListenerInfo describes one registered callback for diagnostics.
type ListenerInfo struct {
	Kind         hooks.Kind `json:"kind"`
	Hook         string     `json:"hook"`
	Target       string     `json:"target"`
	Method       string     `json:"method"`
	Priority     int        `json:"priority"`
	AcceptedArgs int        `json:"accepted_args"`
}

// Dispatcher implements hooks.Dispatcher. Callbacks for a hook run in
// ascending priority; equal priorities keep registration order.
type Dispatcher struct {
	mu      sync.RWMutex
	logger  *logrus.Logger
	actions map[string][]listener
	filters map[string][]listener
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher(logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		logger:  logger,
		actions: make(map[string][]listener),
		filters: make(map[string][]listener),
	}
}

// RegisterAction binds cb to an action hook.
func (d *Dispatcher) RegisterAction(hook string, cb hooks.Callback, priority, acceptedArgs int) {
	d.register(d.actions, hook, cb, priority, acceptedArgs)
}

// RegisterFilter binds cb to a filter hook.
func (d *Dispatcher) RegisterFilter(hook string, cb hooks.Callback, priority, acceptedArgs int) {
	d.register(d.filters, hook, cb, priority, acceptedArgs)
}

func (d *Dispatcher) register(table map[string][]listener, hook string, cb hooks.Callback, priority, acceptedArgs int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := append(table[hook], listener{cb: cb, priority: priority, acceptedArgs: acceptedArgs})
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].priority < list[j].priority
	})
	table[hook] = list
}

// DoAction invokes every action bound to hook. The first callback error
// stops the chain and is returned.
func (d *Dispatcher) DoAction(ctx context.Context, hook string, args ...any) error {
	for _, l := range d.snapshot(d.actions, hook) {
		if _, err := l.cb.Invoke(ctx, limitArgs(args, l.acceptedArgs)...); err != nil {
			d.logger.WithFields(logrus.Fields{
				"action": "do_action",
				"hook":   hook,
				"method": l.cb.Method,
			}).Warn(err.Error())
			return fmt.Errorf("action %s/%s: %w", hook, l.cb.Method, err)
		}
	}
	return nil
}

// ApplyFilters threads value through every filter bound to hook. Extra args
// are passed after the value, limited by each callback's accepted count.
func (d *Dispatcher) ApplyFilters(ctx context.Context, hook string, value any, args ...any) (any, error) {
	for _, l := range d.snapshot(d.filters, hook) {
		callArgs := append([]any{value}, args...)
		out, err := l.cb.Invoke(ctx, limitArgs(callArgs, l.acceptedArgs)...)
		if err != nil {
			d.logger.WithFields(logrus.Fields{
				"action": "apply_filters",
				"hook":   hook,
				"method": l.cb.Method,
			}).Warn(err.Error())
			return nil, fmt.Errorf("filter %s/%s: %w", hook, l.cb.Method, err)
		}
		value = out
	}
	return value, nil
}

// HasListeners reports whether any action or filter is bound to hook.
func (d *Dispatcher) HasListeners(hook string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.actions[hook]) > 0 || len(d.filters[hook]) > 0
}

// Listeners returns every binding, grouped by hook name and in run order.
func (d *Dispatcher) Listeners() []ListenerInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []ListenerInfo
	out = appendInfos(out, hooks.KindAction, d.actions)
	out = appendInfos(out, hooks.KindFilter, d.filters)
	return out
}

func appendInfos(out []ListenerInfo, kind hooks.Kind, table map[string][]listener) []ListenerInfo {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, l := range table[name] {
			out = append(out, ListenerInfo{
				Kind:         kind,
				Hook:         name,
				Target:       fmt.Sprintf("%T", l.cb.Target),
				Method:       l.cb.Method,
				Priority:     l.priority,
				AcceptedArgs: l.acceptedArgs,
			})
		}
	}
	return out
}

func (d *Dispatcher) snapshot(table map[string][]listener, hook string) []listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]listener(nil), table[hook]...)
}

func limitArgs(args []any, accepted int) []any {
	if accepted < 0 {
		accepted = 0
	}
	if accepted >= len(args) {
		return args
	}
	return args[:accepted]
}
