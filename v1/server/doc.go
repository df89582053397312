// Package server exposes document ingestion and candidate-restricted search
// over HTTP with echo.
//
// Routes:
//
//	GET  /health                      liveness
//	POST /api/v1/documents            multipart owning_id + file (PDF)
//	POST /api/v1/search               {"query", "actor_id" | "candidate_ids", "top_k"}
//	GET  /api/v1/actors/:id/candidates resolved candidate owning IDs
//
// Failures are answered with {"error": "..."}: 400 for invalid input, 409
// when the same document is already being ingested, 500 otherwise.
package server
