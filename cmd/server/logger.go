package main

import (
	"github.com/sirupsen/logrus"
)

// logrusAdapter bridges the library's Logger interface onto logrus,
// mapping the trailing key/value pairs to structured fields.
type logrusAdapter struct {
	log *logrus.Logger
}

func (l logrusAdapter) Debug(msg string, args ...any) { l.entry(args).Debug(msg) }
func (l logrusAdapter) Info(msg string, args ...any)  { l.entry(args).Info(msg) }
func (l logrusAdapter) Warn(msg string, args ...any)  { l.entry(args).Warn(msg) }
func (l logrusAdapter) Error(msg string, args ...any) { l.entry(args).Error(msg) }

func (l logrusAdapter) entry(args []any) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	return l.log.WithFields(fields)
}
