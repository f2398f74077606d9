/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logger builds the zap loggers used by every module.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"techtradechain.com/txscheduler/protocol"
)

// module names
const (
	MODULE_CLI       = "[CLI]"
	MODULE_CORE      = "[CORE]"
	MODULE_SCHEDULER = "[SCHEDULER]"
	MODULE_METADATA  = "[METADATA]"
	MODULE_RESOLVER  = "[RESOLVER]"
	MODULE_EXECUTOR  = "[EXECUTOR]"
	MODULE_STORE     = "[STORE]"
)

// levels accepted in config files
const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

// rotation defaults
const (
	DEFAULT_MAX_AGE       = 365 // days
	DEFAULT_ROTATION_TIME = 6   // hours
	DEFAULT_ROTATION_SIZE = 100 // MB
	ROTATION_SIZE_MB      = 1024 * 1024
)

var (
	config     = defaultLogConfig()
	loggers    = make(map[string]*zap.SugaredLogger)
	loggerLock sync.Mutex
)

func defaultLogConfig() *LogConfig {
	return &LogConfig{
		SystemLog: LogNodeConfig{
			LogLevelDefault: INFO,
			LogInConsole:    true,
		},
	}
}

// SetLogConfig replaces the log config, loggers created before are rebuilt on next GetLogger
func SetLogConfig(c *LogConfig) {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	if c == nil {
		c = defaultLogConfig()
	}
	config = c
	for name, l := range loggers {
		_ = l.Sync()
		delete(loggers, name)
	}
}

// GetLogger returns the logger of a module
func GetLogger(name string) protocol.Logger {
	return getSugared(name)
}

func getSugared(name string) *zap.SugaredLogger {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	pureName := strings.Trim(name, "[]")
	nodeConfig := config.GetConfigByModuleName(pureName)
	l, err := newLogger(name, nodeConfig, nodeConfig.LevelOf(pureName))
	if err != nil {
		// fall back to console so that callers always get a logger
		l = zap.NewExample().Named(name)
		l.Sugar().Warnf("create logger failed, use console, %s", err)
	}
	s := l.Sugar()
	loggers[name] = s
	return s
}

// SyncAll flushes every logger
func SyncAll() {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
}

func newLogger(name string, cfg LogNodeConfig, lvl string) (*zap.Logger, error) {
	level, err := getZapLevel(lvl)
	if err != nil {
		return nil, err
	}
	var syncers []zapcore.WriteSyncer
	if cfg.FilePath != "" {
		hook, err := getHook(cfg)
		if err != nil {
			return nil, err
		}
		syncers = append(syncers, zapcore.AddSync(hook))
	}
	if cfg.LogInConsole || len(syncers) == 0 {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    CustomLevelEncoder,
		EncodeTime:     CustomTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	var encoder zapcore.Encoder
	if cfg.JsonFormat {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), zap.NewAtomicLevelAt(level))
	l := zap.New(core).Named(name)
	if cfg.ShowLine {
		l = l.WithOptions(zap.AddCaller())
	}
	if stLevel, err := getZapLevel(cfg.StackTraceLevel); err == nil && cfg.StackTraceLevel != "" {
		l = l.WithOptions(zap.AddStacktrace(stLevel))
	}
	return l, nil
}

func getZapLevel(lvl string) (zapcore.Level, error) {
	switch strings.ToUpper(lvl) {
	case ERROR:
		return zap.ErrorLevel, nil
	case WARN:
		return zap.WarnLevel, nil
	case INFO, "":
		return zap.InfoLevel, nil
	case DEBUG:
		return zap.DebugLevel, nil
	}
	return zap.InfoLevel, errors.Errorf("invalid log level %s", lvl)
}

func getHook(cfg LogNodeConfig) (io.Writer, error) {
	maxAge, rotationTime, rotationSize := cfg.MaxAge, cfg.RotationTime, cfg.RotationSize
	if maxAge <= 0 {
		maxAge = DEFAULT_MAX_AGE
	}
	if rotationTime <= 0 {
		rotationTime = DEFAULT_ROTATION_TIME
	}
	if rotationSize <= 0 {
		rotationSize = DEFAULT_ROTATION_SIZE
	}
	hook, err := rotatelogs.New(
		cfg.FilePath+".%Y%m%d%H",
		rotatelogs.WithLinkName(cfg.FilePath),
		rotatelogs.WithRotationTime(time.Hour*time.Duration(rotationTime)),
		rotatelogs.WithRotationSize(rotationSize*ROTATION_SIZE_MB),
		rotatelogs.WithMaxAge(time.Hour*24*time.Duration(maxAge)),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", cfg.FilePath)
	}
	return hook, nil
}

// CustomLevelEncoder prints the level as [LEVEL]
func CustomLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

// CustomTimeEncoder prints times with millisecond precision
func CustomTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}
