// Package trace emits observability events for workflow stage transitions
// and question-routing decisions. The core emits these events; external
// collaborators consume them.
package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Event is a single stage-transition or routing record
type Event struct {
	RunID        string    `json:"run_id"`
	Stage        string    `json:"stage"`
	InputDigest  string    `json:"input_digest"`
	OutputDigest string    `json:"output_digest"`
	At           time.Time `json:"at"`
}

// Sink receives trace events
type Sink interface {
	Emit(event Event)
}

// ZapSink logs trace events through a zap logger
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink that writes events to the given logger
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Emit implements Sink
func (s *ZapSink) Emit(event Event) {
	if s.logger == nil {
		return
	}
	s.logger.Info("stage transition",
		zap.String("run_id", event.RunID),
		zap.String("stage", event.Stage),
		zap.String("input_digest", event.InputDigest),
		zap.String("output_digest", event.OutputDigest),
		zap.Time("at", event.At),
	)
}

// NopSink discards events
type NopSink struct{}

// Emit implements Sink
func (NopSink) Emit(Event) {}

// Digest returns a short content digest of v for trace correlation.
// Marshal failures produce an empty digest rather than an error; traces
// must never fail the run they observe.
func Digest(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:16]
}
