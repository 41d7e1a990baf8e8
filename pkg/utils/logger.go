package utils

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerConfig struct {
	LogToFile       bool   `json:"log_to_file" yaml:"log_to_file"`
	Filename        string `json:"filename" yaml:"filename"`
	MaxSize         int    `json:"max_size" yaml:"max_size"`
	MaxAge          int    `json:"max_age" yaml:"max_age"`
	MaxBackups      int    `json:"max_backups" yaml:"max_backups"`
	LogLevel        string `json:"log_level" yaml:"log_level"`
	IncludeSrc      bool   `json:"include_src" yaml:"include_src"`
	CompressOldLogs bool   `json:"compress_old_logs" yaml:"compress_old_logs"`
}

func InitLogger(conf LoggerConfig) {
	opts := &slog.HandlerOptions{
		Level:     logLevelFromString(conf.LogLevel),
		AddSource: conf.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}

	var logger *slog.Logger
	if conf.LogToFile && conf.Filename != "" {
		logTarget := &lumberjack.Logger{
			Filename:   conf.Filename,
			MaxSize:    conf.MaxSize, // megabytes
			MaxAge:     conf.MaxAge,  // days
			Compress:   conf.CompressOldLogs,
			MaxBackups: conf.MaxBackups,
		}

		w := io.MultiWriter(os.Stdout, logTarget)
		logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	slog.SetDefault(logger)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
