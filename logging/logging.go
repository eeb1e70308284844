package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the logger shared by the runner and the systems. An unknown
// level falls back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	lg := logrus.New()
	lg.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	lg.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	lg.SetLevel(lvl)
	return lg
}

// System returns an entry tagged with the system name.
func System(lg logrus.FieldLogger, name string) *logrus.Entry {
	if lg == nil {
		lg = Discard()
	}
	return lg.WithField("system", name)
}

// Discard is a logger that writes nowhere. Tests and zero-value systems use
// it.
func Discard() *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	return lg
}
