package mylog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
)

var (
	rootOnce sync.Once
	root     *zap.Logger
)

func init() {
	New = newZapLogger
}

func rootLogger() *zap.Logger {
	rootOnce.Do(func() {
		var err error
		if os.Getenv("KIOSK_ENV") == "production" {
			// JSON lines that log shippers can parse as-is
			root, err = zap.NewProduction()
		} else {
			root, err = zap.NewDevelopment()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating zap logger, logging disabled: %s\n", err)
			root = zap.NewNop()
		}
	})
	return root
}

// Sync flushes buffered log entries; call it once before the process exits.
func Sync() {
	_ = rootLogger().Sync()
}

type zapLogger struct {
	componentName string
	sugar         *zap.SugaredLogger
}

func newZapLogger(componentName string) Logger {
	return zapLogger{
		componentName: componentName,
		sugar:         rootLogger().Named(componentName).Sugar(),
	}
}

func (l zapLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	keysAndValues := []any{"component", l.componentName}
	if traceLabel != "" {
		keysAndValues = append(keysAndValues, "label", traceLabel)
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		keysAndValues = append(keysAndValues, "trace", trace)
	}

	switch severity {
	case SeverityDebug:
		l.sugar.Debugw(msg, keysAndValues...)
	case SeverityWarn:
		l.sugar.Warnw(msg, keysAndValues...)
	case SeverityError:
		l.sugar.Errorw(msg, keysAndValues...)
	default:
		l.sugar.Infow(msg, keysAndValues...)
	}
}
