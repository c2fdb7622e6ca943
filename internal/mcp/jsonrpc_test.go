package mcp

import (
	"encoding/json"
	"testing"
)

func TestRequest_Marshal(t *testing.T) {
	req := NewRequest(1, "tools/list", map[string]any{})
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded["jsonrpc"] != "2.0" {
		t.Errorf("jsonrpc = %v, want 2.0", decoded["jsonrpc"])
	}
	if decoded["method"] != "tools/list" {
		t.Errorf("method = %v, want tools/list", decoded["method"])
	}
	if decoded["id"] != float64(1) {
		t.Errorf("id = %v, want 1", decoded["id"])
	}
}

func TestRequest_OmitsNilParams(t *testing.T) {
	req := NewRequest(7, "ping", nil)
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["params"]; ok {
		t.Error("nil params should be omitted from the wire format")
	}
}

func TestNotification_HasNoID(t *testing.T) {
	n := NewNotification("notifications/initialized", nil)
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["id"]; ok {
		t.Error("notifications must not carry an id")
	}
}

func TestResponse_UnmarshalResult(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":3,"result":{"tools":[]}}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != 3 {
		t.Errorf("id = %d, want 3", resp.ID)
	}
	if resp.Error != nil {
		t.Errorf("error = %v, want nil", resp.Error)
	}
	if len(resp.Result) == 0 {
		t.Error("result should be populated")
	}
}

func TestResponse_UnmarshalError(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":4,"error":{"code":-32601,"message":"method not found"}}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil {
		t.Fatal("expected error object")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("code = %d, want -32601", resp.Error.Code)
	}
	want := "jsonrpc error -32601: method not found"
	if resp.Error.Error() != want {
		t.Errorf("Error() = %q, want %q", resp.Error.Error(), want)
	}
}
