package pipeline

import "log/slog"

// Milestone step names passed to the progress callback.
const (
	StepCrawling   = "crawling"
	StepExtracting = "extracting"
	StepChunking   = "chunking"
	StepProcessing = "processing"
	StepAnalyzing  = "analyzing"
	StepFormatting = "formatting"
)

// ProgressFunc observes pipeline milestones. It is side-effect-only: the
// orchestrator's control flow never depends on it.
type ProgressFunc func(step string, percent float64, message string, items int)

// progressReporter wraps a caller-supplied callback. Percent values are
// clamped to be monotonically non-decreasing, and a panicking observer is
// logged and ignored so it cannot break the run.
type progressReporter struct {
	fn     ProgressFunc
	logger *slog.Logger
	last   float64
}

func newProgressReporter(fn ProgressFunc, logger *slog.Logger) *progressReporter {
	return &progressReporter{fn: fn, logger: logger}
}

func (p *progressReporter) report(step string, percent float64, message string, items int) {
	if p.fn == nil {
		return
	}
	if percent < p.last {
		percent = p.last
	}
	p.last = percent

	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("progress callback panicked", "step", step, "panic", r)
		}
	}()
	p.fn(step, percent, message, items)
}
