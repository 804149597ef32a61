package common

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const logFileName = "aestimo.log"

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the global logger, creating a console-only fallback
// when InitLogger has not run yet.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	// Double-check after acquiring write lock
	if globalLogger == nil {
		globalLogger = arbor.NewLogger().WithConsoleWriter(consoleWriterConfig())
	}
	return globalLogger
}

// InitLogger builds the arbor logger from the logging configuration and
// installs it as the global logger. Output targets are "stdout" and
// "file"; file logs rotate under a logs directory next to the binary.
func InitLogger(config *Config) arbor.ILogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	logger := arbor.NewLogger()

	toFile := false
	toConsole := false
	for _, output := range config.Logging.Output {
		switch output {
		case "file":
			toFile = true
		case "stdout", "console":
			toConsole = true
		}
	}

	if toFile {
		if path, err := logFilePath(); err == nil {
			logger = logger.WithFileWriter(fileWriterConfig(path))
		} else {
			logger = logger.WithConsoleWriter(consoleWriterConfig())
			logger.Warn().Err(err).Msg("File logging unavailable, using console")
			toConsole = false
		}
	}

	if toConsole {
		logger = logger.WithConsoleWriter(consoleWriterConfig())
	}

	logger = logger.WithLevelFromString(config.Logging.Level)

	globalLogger = logger
	return logger
}

// logFilePath resolves the log file location: a logs directory beside
// the executable, or under the working directory when the executable
// path cannot be determined (go run).
func logFilePath() (string, error) {
	baseDir := "."
	if execPath, err := os.Executable(); err == nil {
		baseDir = filepath.Dir(execPath)
	}

	logsDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(logsDir, logFileName), nil
}

func consoleWriterConfig() models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		TextOutput:       true,
		DisableTimestamp: false,
	}
}

func fileWriterConfig(path string) models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:             models.LogWriterTypeFile,
		FileName:         path,
		TimeFormat:       "15:04:05",
		MaxSize:          100 * 1024 * 1024, // 100 MB
		MaxBackups:       3,
		TextOutput:       true,
		DisableTimestamp: false,
	}
}
