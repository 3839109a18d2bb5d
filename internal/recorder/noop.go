package recorder

import "EchoSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEcho(_ *model.EchoResult) error             { return nil }
func (n *NoopRecorder) RecordMonteCarlo(_ *model.MonteCarloResult) error { return nil }
func (n *NoopRecorder) RecordSignal(_ *model.TradingSignal) error        { return nil }
func (n *NoopRecorder) RecordHealth(_ *model.SystemHealth) error         { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
