package amqp

import (
	"testing"
	"time"
)

func TestNewRebuildRequest(t *testing.T) {
	msg := NewRebuildRequest("import", 412)

	if msg.Reason != "import" {
		t.Errorf("NewRebuildRequest() Reason = %v, want import", msg.Reason)
	}
	if msg.ImportedRows != 412 {
		t.Errorf("NewRebuildRequest() ImportedRows = %v, want 412", msg.ImportedRows)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewRebuildRequest() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewRebuildRequest() Timestamp should be recent")
	}
}

func TestRebuildRequest_JSON(t *testing.T) {
	timestamp := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	msg := &RebuildRequest{
		Reason:       "scheduled",
		ImportedRows: 0,
		Timestamp:    timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := RebuildRequestFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("RebuildRequestFromJSON() error = %v", err)
	}

	if parsedMsg.Reason != msg.Reason {
		t.Errorf("Parsed Reason = %v, want %v", parsedMsg.Reason, msg.Reason)
	}
	if parsedMsg.ImportedRows != msg.ImportedRows {
		t.Errorf("Parsed ImportedRows = %v, want %v", parsedMsg.ImportedRows, msg.ImportedRows)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestRebuildRequest_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"reason": 42, "imported_rows": "many"}`)

	if _, err := RebuildRequestFromJSON(invalidJSON); err == nil {
		t.Error("RebuildRequestFromJSON() should fail with invalid JSON")
	}
}
