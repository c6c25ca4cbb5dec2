package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// newLogger creates a logger writing "HH:MM:SS.ms" timestamps
// (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command from start to finish.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key/value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// logStages writes per-stage timings and cache outcomes at debug level.
func logStages(l *log.Logger, s pipeline.Stats, ci pipeline.CacheInfo) {
	l.Debug("load", "rows", s.Rows, "series", s.Series, "took", s.LoadTime.Round(time.Microsecond))
	l.Debug("layout", "cached", ci.SceneHit, "took", s.LayoutTime.Round(time.Microsecond))
	l.Debug("render", "cached", ci.RenderHit, "took", s.RenderTime.Round(time.Microsecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
