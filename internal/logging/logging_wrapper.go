package logging

import (
	"github.com/sirupsen/logrus"
)

// LoggingWrapper runs one engine operation with its own LogData, logging
// <name>.Start, then <name>.Complete or <name>.Error with the collected fields.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	operation func(*LogData) error,
) error {
	logData := NewLogData(log)
	log.Debugf("%v.Start", loggingName)

	endTimer := logData.AddTiming("duration")
	err := operation(logData)
	endTimer()

	if err != nil {
		logData.Log().WithError(err).Errorf("%v.Error", loggingName)
		return err
	}

	logData.Log().Infof("%v.Complete", loggingName)
	return nil
}
