package storage

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger routes badger's printf-style logging into logr.
// Info goes to V(1) and debug to V(2) so a default logger only shows
// warnings and errors.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(nil, trim(format, args))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Info(trim(format, args))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.V(1).Info(trim(format, args))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.V(2).Info(trim(format, args))
}

func trim(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
