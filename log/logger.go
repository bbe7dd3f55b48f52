package log

import (
	"go.uber.org/zap"
)

// Logger defines an interface for logging messages at various levels.
type Logger interface {
	// Debug logs a message at debug level with optional fields.
	Debug(msg string, fields ...zap.Field)
	// Info logs a message at info level with optional fields.
	Info(msg string, fields ...zap.Field)
	// Warn logs a message at warn level with optional fields.
	Warn(msg string, fields ...zap.Field)
	// Error logs a message at error level with optional fields.
	Error(msg string, fields ...zap.Field)
}

var (
	_ Logger = &loggerImpl{}
	_ Logger = &NoOpLogger{}
)

type loggerImpl struct {
	zapLogger *zap.Logger
}

// NewLogger creates a new logger.
// If isProduction is true, the logger is configured for production with JSON
// output to the given file. Otherwise, a console development logger is
// returned and fileName is ignored.
// logLevel is one of zap's textual levels ("debug", "info", "warn", "error").
// An empty level defaults to info.
func NewLogger(isProduction bool, fileName string, logLevel string) (Logger, error) {
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
		if fileName != "" {
			config.OutputPaths = []string{fileName}
			config.ErrorOutputPaths = []string{fileName}
		}
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = level

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		zapLogger: zapLogger,
	}, nil
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// NoOpLogger is a logger that silently drops all messages. Useful in tests.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, fields ...zap.Field) {}

func (l *NoOpLogger) Info(msg string, fields ...zap.Field) {}

func (l *NoOpLogger) Warn(msg string, fields ...zap.Field) {}

func (l *NoOpLogger) Error(msg string, fields ...zap.Field) {}
