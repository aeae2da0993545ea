package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel 日志级别
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config 日志配置
type Config struct {
	Level      LogLevel
	Output     io.Writer
	TimeFormat string
	Pretty     bool
	// Verbosity 对应 -v/-vv/-vvv/-vvvv，控制 Vf 的输出
	Verbosity int
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
		Pretty:     true,
	}
}

// Logger 是注入各组件的诊断输出接口实现。
// 不使用全局单例，每个组件都显式持有自己的 Logger。
type Logger struct {
	zl        zerolog.Logger
	verbosity int
}

// New 创建日志实例
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	zl := zerolog.New(output).
		Level(parseLogLevel(cfg.Level)).
		With().Timestamp().Logger()

	return &Logger{zl: zl, verbosity: cfg.Verbosity}
}

// Discard 返回丢弃所有输出的日志实例，主要用于测试
func Discard() *Logger {
	return &Logger{zl: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// parseLogLevel 解析日志级别
func parseLogLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Verbosity 返回当前的 verbosity 等级
func (l *Logger) Verbosity() int {
	return l.verbosity
}

// Vf 输出 verbosity 日志，level 为 1-4（对应 -v 到 -vvvv）。
// 只有配置的 Verbosity 不小于 level 时才会输出。
func (l *Logger) Vf(level int, format string, args ...any) {
	if l.verbosity < level {
		return
	}
	l.zl.Debug().Int("v", level).Msgf(format, args...)
}

// Debugf 格式化调试日志
func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Infof 格式化信息日志
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warnf 格式化警告日志
func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Errorf 格式化错误日志
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
