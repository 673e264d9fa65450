package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init configures the process logger. level accepts logrus level names;
// format "json" switches to structured output.
func Init(level, format string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// fields turns alternating key/value pairs into logrus fields. A trailing
// key without a value is kept under "extra".
func fields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			f["extra"] = key
			break
		}
		if err, ok := kv[i+1].(error); ok {
			f[key] = err.Error()
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}

func Info(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Info(msg)
}

func Infof(format string, v ...interface{}) {
	log.Infof(format, v...)
}

func Warn(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Warn(msg)
}

func Error(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Error(msg)
}

func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func Debug(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Debug(msg)
}

func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// Leveled adapts the process logger to SDKs that expect a leveled logger
// with printf-style methods (stripe-go's LeveledLoggerInterface).
func Leveled() *LeveledLogger {
	return &LeveledLogger{}
}

type LeveledLogger struct{}

func (LeveledLogger) Debugf(format string, v ...interface{}) { log.Debugf(format, v...) }
func (LeveledLogger) Infof(format string, v ...interface{})  { log.Infof(format, v...) }
func (LeveledLogger) Warnf(format string, v ...interface{})  { log.Warnf(format, v...) }
func (LeveledLogger) Errorf(format string, v ...interface{}) { log.Errorf(format, v...) }
