// Package handlers implements the relay's HTTP endpoints: POST /chat and
// GET /health.
package handlers
