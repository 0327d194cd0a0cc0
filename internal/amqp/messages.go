package amqp

import (
	"encoding/json"
	"time"
)

// RebuildRequest asks the worker to regenerate dashboard data and reports.
// It carries only the trigger context; the worker reads everything it needs
// from the data directory.
type RebuildRequest struct {
	Reason       string    `json:"reason"`
	ImportedRows int       `json:"imported_rows,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewRebuildRequest creates a rebuild request for the given trigger reason.
func NewRebuildRequest(reason string, importedRows int) *RebuildRequest {
	return &RebuildRequest{
		Reason:       reason,
		ImportedRows: importedRows,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RebuildRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RebuildRequestFromJSON creates a message from JSON bytes
func RebuildRequestFromJSON(data []byte) (*RebuildRequest, error) {
	var msg RebuildRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
