package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// Audit emits a structured audit event for credential, token, and dealership
// status operations. Best-effort: a nil logger is a no-op.
func Audit(logger *logrus.Logger, action, userID, email string, fields logrus.Fields) {
	if logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["audit"] = true
	fields["action"] = action
	if userID != "" {
		fields["user_id"] = userID
	}
	if email != "" {
		fields["email"] = email
	}
	logger.WithFields(fields).Info("audit")
}
