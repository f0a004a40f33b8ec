package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	log.Level = logrus.InfoLevel
	return log
}

// fail logs the error and exits with the given code.
func fail(log logrus.FieldLogger, code int, err error) {
	log.Error(err)
	os.Exit(code)
}
