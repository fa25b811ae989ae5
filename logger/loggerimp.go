package logger

import "go.uber.org/zap"

// loggerImp keeps the structured and the sugared logger side by side
type loggerImp struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// Named child of the process logger, used to tag a simulation run or a
// subsystem
func Named(name string, fields ...zap.Field) *zap.Logger {
	return Zap().Named(name).With(fields...)
}
