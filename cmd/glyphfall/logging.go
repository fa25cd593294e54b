package main

import (
	"os"

	"github.com/lixenwraith/glyphfall/logging"
)

const (
	logDir      = "logs"
	logFileName = "glyphfall.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging discards logs unless debug is set; see logging.Setup
func setupLogging(debug bool) *os.File {
	return logging.Setup(debug, logDir, logFileName, maxLogSize)
}
