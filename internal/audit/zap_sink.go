package audit

import (
	"time"

	"go.uber.org/zap"
)

// ZapSink writes each event as an info entry on the "audit" logger. The
// logger it is given should be enabled at info; the diagnostic logger's
// default warn level would drop the whole trail.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapSink{logger: logger.Named("audit")}
}

func (s *ZapSink) Record(event Event) {
	s.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("kind", string(event.Kind)),
		zap.String("username", event.Username),
		zap.Int("record_id", event.RecordID),
		zap.String("target", event.Target),
		zap.String("detail", event.Detail),
	)
}
