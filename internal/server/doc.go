// SPDX-License-Identifier: EPL-2.0

// Package server is the HTTP front end of wavscribe.
//
// Routes:
//
//	POST /v1/transcribe   multipart upload, field "file"
//	GET  /v1/ws           WebSocket; each binary message is one audio file
//	GET  /healthz         liveness
//	GET  /metrics         Prometheus exposition
//
// Both transcription routes answer with {"id", "text"} or {"id", "error"}.
// Errors keep the bridge's messages, and POST maps their class to a status:
// 415 for unsupported encodings, 422 for unreadable or empty audio and 502
// when the engine fails. Every request carries an X-Request-ID.
package server
