package hooks

// Registry keeps actions and filters in two insertion-ordered sequences.
// It is written only during bootstrap and read by Run; it has no reset.
type Registry struct {
	actions []Registration
	filters []Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddAction appends an action binding. Hook names are not validated.
func (r *Registry) AddAction(hook string, target Component, method string, opts ...Option) {
	r.actions = append(r.actions, newRegistration(KindAction, hook, target, method, opts))
}

// AddFilter appends a filter binding. Hook names are not validated.
func (r *Registry) AddFilter(hook string, target Component, method string, opts ...Option) {
	r.filters = append(r.filters, newRegistration(KindFilter, hook, target, method, opts))
}

// Run registers every action, then every filter, with the dispatcher in
// insertion order. The sequences are left untouched, so calling Run again
// registers every binding a second time.
func (r *Registry) Run(d Dispatcher) {
	for _, reg := range r.actions {
		d.RegisterAction(reg.Hook, reg.Callback(), reg.Priority, reg.AcceptedArgs)
	}
	for _, reg := range r.filters {
		d.RegisterFilter(reg.Hook, reg.Callback(), reg.Priority, reg.AcceptedArgs)
	}
}

// Actions returns a copy of the pending action bindings.
func (r *Registry) Actions() []Registration {
	return append([]Registration(nil), r.actions...)
}

// Filters returns a copy of the pending filter bindings.
func (r *Registry) Filters() []Registration {
	return append([]Registration(nil), r.filters...)
}

// Len reports the total number of pending bindings.
func (r *Registry) Len() int {
	return len(r.actions) + len(r.filters)
}

func newRegistration(kind Kind, hook string, target Component, method string, opts []Option) Registration {
	reg := Registration{
		Kind:         kind,
		Hook:         hook,
		Target:       target,
		Method:       method,
		Priority:     DefaultPriority,
		AcceptedArgs: DefaultAcceptedArgs,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}
	return reg
}
