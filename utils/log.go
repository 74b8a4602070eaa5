// utils/log.go
package utils

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared structured logger. Components attach their own
// "module" field via Logger.WithFields.
var Logger = logrus.New()

// InitLogger configures the shared logger from the environment:
// LOG_LEVEL (debug|info|warn|error, default info), LOG_FILE (rotated file
// output when set, stdout otherwise), LOG_MAX_SIZE (MB before rotation).
func InitLogger() {
	level, err := logrus.ParseLevel(Getenv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.JSONFormatter{})

	if fileName := os.Getenv("LOG_FILE"); fileName != "" {
		Logger.SetOutput(&lumberjack.Logger{
			Filename: fileName,
			MaxSize:  GetenvInt("LOG_MAX_SIZE", 50), // MB
		})
	} else {
		Logger.SetOutput(os.Stdout)
	}
}
