package dto

import (
	"errors"
	"testing"
)

func TestRefValidate(t *testing.T) {
	tests := []struct {
		name string
		ref  Ref
		code ErrorCode
	}{
		{"id", Ref{ID: 1}, ""},
		{"code", Ref{Code: "112"}, ""},
		{"empty", Ref{}, ErrorCodeMissingField},
		{"blank code", Ref{Code: "  "}, ErrorCodeMissingField},
		{"negative", Ref{ID: -1}, ErrorCodeInvalidFormat},
		{"both", Ref{ID: 1, Code: "112"}, ErrorCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Validate() = %v, want *APIError", err)
			}
			if apiErr.Code() != tt.code {
				t.Errorf("Code() = %s, want %s", apiErr.Code(), tt.code)
			}
		})
	}
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name string
		item Item
		ok   bool
	}{
		{"valid", Item{Code: "INV-1", Quantity: 1, IncomingDate: "2024-05-17"}, true},
		{"no code", Item{Quantity: 1}, false},
		{"negative quantity", Item{Code: "A", Quantity: -1}, false},
		{"bad date", Item{Code: "A", OutgoingDate: "yesterday"}, false},
		{"user without surname", Item{Code: "A", User: &User{Name: "John"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestUpsertItemRequestValidate(t *testing.T) {
	r := UpsertItemRequest{Ref: Ref{Code: "112"}, Item: Item{Code: "INV-1"}}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	r.Ref = Ref{}
	if err := r.Validate(); err == nil {
		t.Error("missing room reference should fail")
	}
}
