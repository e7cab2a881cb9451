// Package api - request and response types.
package api

import (
	"encoding/json"

	"stacksafe/core/engine"
)

// AnalyzeRequest is the input to POST /analyze
type AnalyzeRequest struct {
	Items []ItemPayload `json:"items"`
}

// ItemPayload is one stack entry on the wire.
// Dose is a JSON number decoded without float conversion so declared doses
// survive with full precision.
type ItemPayload struct {
	Name string      `json:"name"`
	Dose json.Number `json:"dose"`
	Unit string      `json:"unit"`
	Role string      `json:"role"`
}

// AnalyzeResponse is the output of POST /analyze
type AnalyzeResponse struct {
	Report   *engine.Report   `json:"report"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries execution context
type ResponseMetadata struct {
	RequestID     string `json:"request_id"`
	InputHash     string `json:"input_hash"`
	KBVersion     string `json:"kb_version"`
	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody holds the error code and message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
