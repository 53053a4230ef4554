// Package server implements the lighting controller's control surface: a
// raw TCP listener that answers exactly one HTTP/1.0-style request per
// connection.
//
// GET /ajax/<command>/<int> changes a render parameter (scheme, pattern,
// width, speed) or stops the engine. Every other GET path is served from a
// static file tree. Failures map to one of two outcomes: 404 for a missing
// file and 500 for everything else.
package server
