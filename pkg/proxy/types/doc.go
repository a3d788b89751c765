// Package types defines the JSON bodies exchanged on the relay's HTTP
// surface. Field names follow the browser client (camelCase), except the
// options and usage objects, which keep the upstream snake_case names.
package types
