// Package host is the in-process runtime the yearbook plugin is loaded into.
// It owns event dispatch (actions and filters ordered by priority), a YAML
// backed entity/term/field store, the schema registry, text-domain catalogs
// and the per-request asset queue. The plugin only sees these through the
// interfaces declared in package yearbook and the hooks.Dispatcher contract.
package host
