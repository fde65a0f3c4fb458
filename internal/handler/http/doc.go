// Package http implements the agent's local control API.
//
// The UI shell talks to the agent exclusively through this surface: gown
// mutations, event data reads, queue inspection, manual sync and prefetch
// triggers, and the controller status flags. Route wiring, request handlers
// and middleware (request tracing, access logging, panic recovery) live here;
// requests are delegated to the service layer once decoded.
package http
