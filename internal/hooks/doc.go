// Package hooks collects action/filter bindings during plugin bootstrap and
// replays them against a host dispatcher in one Run call. The registry is a
// plain data structure: it never talks to the host until Run, so binding order
// and host coupling can be asserted without a live runtime.
package hooks
