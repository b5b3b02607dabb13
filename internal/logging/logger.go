// Package logging builds the arbor logger used across stockmood.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"github.com/zappabad/stockmood/internal/config"
)

const timeFormat = "15:04:05"

// Outputs reports which writers cfg asks for.
func Outputs(cfg config.LoggingConfig) (file, console bool) {
	for _, output := range cfg.Output {
		switch output {
		case "file":
			file = true
		case "stdout", "console":
			console = true
		}
	}
	return file, console
}

// New returns a logger writing to the outputs named in cfg. When the log
// directory cannot be created the file writer is skipped with a warning on
// stderr. With no usable writer the logger discards everything.
func New(cfg config.LoggingConfig) arbor.ILogger {
	hasFile, hasConsole := Outputs(cfg)
	if !hasFile && !hasConsole {
		return Discard()
	}

	logger := arbor.NewLogger()

	if hasFile && cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
		} else {
			logger = logger.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   cfg.File,
				TimeFormat: timeFormat,
				MaxSize:    10 * 1024 * 1024, // 10 MB
				MaxBackups: 3,
				OutputType: models.OutputFormatLogfmt,
			})
		}
	}

	if hasConsole {
		logger = logger.WithConsoleWriter(models.WriterConfiguration{
			Type:       models.LogWriterTypeConsole,
			TimeFormat: timeFormat,
		})
	}

	return logger.WithLevelFromString(cfg.Level)
}
