package logger

import (
	"context"

	"go.uber.org/zap"
)

var global = zap.Must(zap.NewProduction(zap.AddCallerSkip(1))).Sugar()

// Init replaces the process logger. Pass debug=true for human-readable
// development output.
func Init(debug bool) {
	var l *zap.Logger
	if debug {
		l = zap.Must(zap.NewDevelopment(zap.AddCallerSkip(1)))
	} else {
		l = zap.Must(zap.NewProduction(zap.AddCallerSkip(1)))
	}
	global = l.Sugar()
}

func Debugf(_ context.Context, format string, args ...interface{}) {
	global.Debugf(format, args...)
}

func Infof(_ context.Context, format string, args ...interface{}) {
	global.Infof(format, args...)
}

func Warnf(_ context.Context, format string, args ...interface{}) {
	global.Warnf(format, args...)
}

func Errorf(_ context.Context, format string, args ...interface{}) {
	global.Errorf(format, args...)
}

func Error(_ context.Context, msg string) {
	global.Error(msg)
}

// Fatal logs err and exits. nil err is ignored so it can wrap blocking
// calls like router.Start.
func Fatal(_ context.Context, err error) {
	if err == nil {
		return
	}
	global.Fatal(err.Error())
}
