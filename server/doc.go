// Package server provides the gallery's HTTP server: a Gin engine served
// through h2c, wrapped as a lifecycle component.
//
// Middleware (server/middleware): Recovery, RequestID, RequestLogger,
// Metrics, CORS and APIKey.
//
// Endpoints (server/endpoint): Health, Metrics and Version.
package server
