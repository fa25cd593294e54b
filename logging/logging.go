// Package logging routes the standard logger to a size-rotated file in debug
// runs and discards it otherwise, so nothing is written over the screen.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Setup directs log output. With debug off it discards and returns nil.
// With debug on it opens dir/name for append, first renaming an existing
// file larger than maxSize to name-<timestamp>.log. Caller closes the file
func Setup(debug bool, dir, name string, maxSize int64) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102-150405")))
		os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Printf("=== session start pid=%d ===", os.Getpid())
	return f
}
