// Package logger holds the process wide zap logger and the event journal.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var l *loggerImp

// Init builds the process logger from the logger.* keys of config
func Init(name string, config *viper.Viper) error {
	zl, err := New(name, config)
	if err != nil {
		return err
	}
	l = &loggerImp{logger: zl, sugar: zl.Sugar()}
	l.logger.Info("initialize logger", zap.String("name", name))
	return nil
}

// Zap returns the process logger, a nop logger before Init
func Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Sync flushes buffered entries
func Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}

// New logger writing JSON to stdout and, when logger.dir is set, to
// {dir}/{name}.log
func New(name string, config *viper.Viper) (*zap.Logger, error) {
	level, err := parseLevel(config.GetString("logger.level"))
	if err != nil {
		return nil, err
	}
	fileDir := config.GetString("logger.dir")
	rotation := config.GetBool("logger.rotation")
	stdout := config.GetBool("logger.stdout")

	consoleLogger := newJSONLogger(zapcore.Lock(os.Stdout), level)
	if fileDir == "" {
		return consoleLogger, nil
	}

	file := filepath.Join(fileDir, name+".log")
	if err := os.MkdirAll(fileDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create log dir %s", fileDir)
	}

	var fileLogger *zap.Logger
	if rotation {
		fileLogger = newRotatingFileLogger(config, file, level)
	} else {
		output, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", file)
		}
		fileLogger = newJSONLogger(zapcore.Lock(output), level)
	}

	if stdout {
		return newMultiLogger(consoleLogger, fileLogger), nil
	}
	return fileLogger, nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, errors.Errorf("logger level %q invalid, must be one of: debug, info, warn, error", level)
}

func newRotatingFileLogger(config *viper.Viper, fileName string, level zapcore.Level) *zap.Logger {
	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    config.GetInt("logger.maxsize"),
		MaxAge:     config.GetInt("logger.maxage"),
		MaxBackups: config.GetInt("logger.maxbackups"),
		LocalTime:  config.GetBool("logger.localtime"),
		Compress:   config.GetBool("logger.compress"),
	})
	return newJSONLogger(writeSyncer, level)
}

func newMultiLogger(loggers ...*zap.Logger) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(loggers))
	for _, logger := range loggers {
		cores = append(cores, logger.Core())
	}
	teeCore := zapcore.NewTee(cores...)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller()}
	return zap.New(teeCore, options...)
}

func newJSONLogger(output zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newJSONEncoder(), output, level)
	options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller()}
	return zap.New(core, options...)
}

func newJSONEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}

// Debug logger
func Debug(msg string, fields ...zap.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logger
func Info(msg string, fields ...zap.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logger
func Warn(msg string, fields ...zap.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logger
func Error(msg string, fields ...zap.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Error(msg, fields...)
}

// Fatal logger, log message then call os.Exit(1).
func Fatal(msg string, fields ...zap.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		os.Exit(1)
	}
	l.logger.Fatal(msg, fields...)
}

// Infof logger
func Infof(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Infof(format, args...)
}

// Warnf logger
func Warnf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Warnf(format, args...)
}

// Errorf logger
func Errorf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.sugar.Errorf(format, args...)
}
