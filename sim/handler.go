package sim

import (
	"fmt"

	"github.com/tutumagi/sweepaoi/aoi"
	"github.com/tutumagi/sweepaoi/logger"
	"go.uber.org/zap"
)

// JournalFlag journal the LogHandler records to, configure it as
// "1-{name}" in daylog.name
const JournalFlag = 1

// Observation one enter or leave seen by an observer
type Observation struct {
	Tick     uint64
	Observer aoi.ID
	Target   aoi.ID
	Kind     aoi.EventKind
	From     aoi.Point // observer position
	To       aoi.Point // target position
	Distance int
}

func (o Observation) String() string {
	return fmt.Sprintf("[id: %d %s] --> [id: %d %s] %s dist:%d", o.Observer, o.From, o.Target, o.To, o.Kind, o.Distance)
}

//go:generate mockgen -destination=mocks/handler.go -package=mocks github.com/tutumagi/sweepaoi/sim EventHandler

// EventHandler receives every event the world triggers
type EventHandler interface {
	OnEvent(o Observation)
}

// HandlerFunc adapts a function to EventHandler
type HandlerFunc func(o Observation)

// OnEvent calls f
func (f HandlerFunc) OnEvent(o Observation) {
	f(o)
}

// LogHandler logs every observation and records it to the journal
type LogHandler struct {
	log *zap.Logger
}

// NewLogHandler logging to log
func NewLogHandler(log *zap.Logger) *LogHandler {
	return &LogHandler{log: log}
}

// OnEvent logs o
func (h *LogHandler) OnEvent(o Observation) {
	h.log.Info("aoi event",
		zap.Uint64("tick", o.Tick),
		zap.Int32("observer", int32(o.Observer)),
		zap.Int32("target", int32(o.Target)),
		zap.Stringer("kind", o.Kind),
		zap.Stringer("from", o.From),
		zap.Stringer("to", o.To),
		zap.Int("dist", o.Distance),
	)
	logger.DayLogRecord(JournalFlag, "%d %s", o.Tick, o)
}
