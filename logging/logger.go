package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	// Packages log before main bootstraps (and tests never bootstrap).
	Log = logrus.New()
}

// BootstrapLogger replaces the global logger. Unknown levels fall back to debug.
func BootstrapLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.DebugLevel
	}

	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			FullTimestamp: true,
		},
		Level:    lvl,
		ExitFunc: os.Exit,
	}

	Log.SetReportCaller(true)
}
