package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Log is the session logger. The alternate screen owns stdout, so everything
// goes to a file under the user config dir; if that fails the logger is a
// silent sink rather than a startup failure.
var Log = log.New(io.Discard, "", 0)

// Init points Log at ~/.config/cradio/cradio.log and returns the path.
func Init() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	dir := filepath.Join(configDir, "cradio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}

	logPath := filepath.Join(dir, "cradio.log")
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return ""
	}

	Log = log.New(file, "cradio: ", log.LstdFlags)
	return logPath
}
