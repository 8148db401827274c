package orientation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventType tags orientation messages relayed from an embedding context.
const EventType = "deviceorientation"

// ErrNotOrientation is returned for well-formed messages of another type.
var ErrNotOrientation = errors.New("orientation: not an orientation message")

type envelope struct {
	Type  string   `json:"type"`
	Alpha *float64 `json:"alpha"`
	Beta  *float64 `json:"beta"`
	Gamma *float64 `json:"gamma"`
	Data  *Sample  `json:"data"`
}

// DecodeEnvelope unwraps a relayed message. The angles may sit at the top
// level or inside a "data" object.
func DecodeEnvelope(msg []byte) (Sample, error) {
	var env envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return Sample{}, fmt.Errorf("orientation: decode envelope: %w", err)
	}
	if env.Type != EventType {
		return Sample{}, ErrNotOrientation
	}
	if env.Data != nil {
		return *env.Data, nil
	}
	if env.Alpha == nil || env.Beta == nil || env.Gamma == nil {
		return Sample{}, fmt.Errorf("orientation: envelope missing angles")
	}
	return Sample{Alpha: *env.Alpha, Beta: *env.Beta, Gamma: *env.Gamma}, nil
}

// EncodeEnvelope wraps a sample for relaying.
func EncodeEnvelope(s Sample) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Sample
	}{Type: EventType, Sample: s})
}
