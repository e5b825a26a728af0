// Package errors provides the structured application error used across the
// gallery service.
//
// Storage, listing and HTTP client failures are translated into *AppError at
// the package boundary so handlers can map them to a status code and a stable
// machine-readable code without inspecting strings.
package errors
