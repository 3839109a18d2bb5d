package recorder

import "EchoSentinel/internal/model"

// Recorder persists simulation outcomes for later analysis. Only
// results are stored; intermediate matrices and vectors never leave
// the engine.
type Recorder interface {
	RecordEcho(res *model.EchoResult) error
	RecordMonteCarlo(res *model.MonteCarloResult) error
	RecordSignal(sig *model.TradingSignal) error
	RecordHealth(h *model.SystemHealth) error
	Close() error
}
