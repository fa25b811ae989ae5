package utils

import (
	"go.uber.org/zap"
)

// CatchPanic call a `f` and return the err if `f` paniced
func CatchPanic(log *zap.Logger, f func()) (err interface{}) {
	defer func() {
		err = recover()
		if err != nil {
			log.Error("catch panic error", zap.Any("error", err))
		}
	}()
	f()
	return
}

// RunPanicless run `f`, return true if there is no panic
func RunPanicless(log *zap.Logger, f func()) (success bool) {
	return CatchPanic(log, f) == nil
}
