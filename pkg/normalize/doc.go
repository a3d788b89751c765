// Package normalize cleans raw model output into conversational prose.
//
// The pipeline strips markdown emphasis, list markers and separator lines,
// folds short list-like lines into one paragraph, and applies the emoji
// policy. It is pure and deterministic, and Normalize is idempotent:
// normalizing an already normalized reply returns it unchanged.
//
// Normalize may return an empty string (for example when the model answered
// with nothing but a separator). Callers decide what to show instead.
package normalize
