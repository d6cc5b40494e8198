package diagnostic

import (
	"github.com/sirupsen/logrus"
)

// LogSink writes diagnostics to a logrus logger. Info diagnostics are logged
// at debug level so a default info-level logger only shows drops and errors.
type LogSink struct {
	log logrus.FieldLogger
}

// NewLogSink returns a Sink logging through log.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log}
}

// Report implements Sink.
func (s *LogSink) Report(d Diagnostic) {
	entry := s.log.WithFields(logrus.Fields{
		"kind":  d.Kind.String(),
		"owner": d.OwnerKey,
		"code":  string(d.Code),
	})
	if d.Field != "" {
		entry = entry.WithField("field", d.Field)
	}

	switch d.Severity {
	case SeverityError:
		entry.Error(d.Message)
	case SeverityWarning:
		entry.Warn(d.Message)
	default:
		entry.Debug(d.Message)
	}
}
