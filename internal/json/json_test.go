package json

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecodeJson(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	decoder := json.NewDecoder(strings.NewReader(`{"name": "Polly"}`))

	if err := DecodeJson(&dst, decoder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Name != "Polly" {
		t.Errorf("expected Polly, got %q", dst.Name)
	}
}

func TestDecodeJsonExtraneousTokens(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	decoder := json.NewDecoder(strings.NewReader(`{"name": "Polly"}{"name": "Breed"}`))

	err := DecodeJson(&dst, decoder)
	if !errors.Is(err, DecodeJSONError) {
		t.Errorf("expected DecodeJSONError, got %v", err)
	}
}

func TestDecodeJsonMalformed(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	decoder := json.NewDecoder(strings.NewReader(`{"name":`))

	err := DecodeJson(&dst, decoder)
	if !errors.Is(err, DecodeJSONError) {
		t.Errorf("expected DecodeJSONError, got %v", err)
	}
}
