// Package server hosts the Fiber HTTP service that renders entities through
// the host's filter chain. It attaches recover and request-id middleware,
// maps /<slug>/<id> to the public entity type registered under that slug,
// and leaves the /-/ prefix to diagnostics routes registered by the routes
// subpackage. Keep exports narrow and accept explicit dependencies.
package server
