package net

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned when an inbound frame cannot be parsed.
// Receivers drop the frame and keep reading; it is never fatal.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Encode serializes payload on its own, then wraps it in an Envelope of
// the given kind.
func Encode(kind string, payload any) ([]byte, error) {
	if kind == "" {
		return nil, fmt.Errorf("encode: empty message kind")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", kind, err)
	}
	return json.Marshal(Envelope{Kind: kind, Data: string(data)})
}

// Decode parses an inbound frame and returns its kind plus the still-raw
// payload bytes.
func Decode(frame []byte) (string, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Kind == "" {
		return "", nil, fmt.Errorf("%w: missing kind", ErrMalformedEnvelope)
	}
	raw := json.RawMessage(env.Data)
	if !json.Valid(raw) {
		return "", nil, fmt.Errorf("%w: payload for %q is not valid JSON", ErrMalformedEnvelope, env.Kind)
	}
	return env.Kind, raw, nil
}

// DecodePayload unmarshals a raw payload into a concrete type.
func DecodePayload[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return out, nil
}
