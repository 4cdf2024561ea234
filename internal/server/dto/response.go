// Response types that are not plain storage records.

package dto

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// MessageResponse acknowledges an operation with no payload.
type MessageResponse struct {
	Status string `json:"status"`
}

// ImportResponse reports whether a history import inserted anything.
type ImportResponse struct {
	Imported bool `json:"imported"`
}
