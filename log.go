package botan

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type loggerHolder struct {
	logrus.FieldLogger
}

var logger atomic.Value

func init() {
	logger.Store(loggerHolder{logrus.StandardLogger()})
}

// SetLogger replaces the logger used to report events that cannot be
// returned to the caller, such as failures of native object destruction.
// Passing nil restores the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger.Store(loggerHolder{l})
}

func log() logrus.FieldLogger {
	return logger.Load().(loggerHolder).FieldLogger
}
