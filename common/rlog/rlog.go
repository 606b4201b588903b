package rlog

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// New returns a logger tagged with the package name
func New(pkg string, ctx ...interface{}) log.Logger {
	return log.New(append([]interface{}{"pkg", pkg}, ctx...)...)
}

// SetLevel parses the level name and routes the root logger to stderr
func SetLevel(level string) error {
	return SetOutput(os.Stderr, level, false)
}

// SetOutput routes the root logger to w, filtering records under the level
func SetOutput(w io.Writer, level string, json bool) error {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	var format log.Format
	if json {
		format = log.JSONFormat()
	} else {
		format = log.TerminalFormat(false)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, format)))
	return nil
}

// Discard silences the root logger
func Discard() {
	log.Root().SetHandler(log.DiscardHandler())
}
