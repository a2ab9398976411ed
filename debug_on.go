//go:build galloc_debug

package galloc

import (
	"sync"

	"go.uber.org/zap"
)

// debugEnabled is true when built with -tags galloc_debug.
const debugEnabled = true

var debugLoggerOnce sync.Once
var debugLogger *zap.SugaredLogger

func debugSugar() *zap.SugaredLogger {
	debugLoggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		debugLogger = l.Sugar()
	})
	return debugLogger
}

// debugLog emits a debug-level log line. Compiled out entirely (see
// debug_off.go) unless the galloc_debug build tag is set. arena.go and
// registry.go call this unconditionally on cold paths (mapping, mapping
// failure) where the cost of the call is irrelevant in the default build.
func debugLog(format string, args ...any) {
	debugSugar().Debugf(format, args...)
}
