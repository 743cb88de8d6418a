package prefs

import (
	"github.com/pkg/errors"

	"github.com/tomz197/voyager/internal/logging"
)

// Options selects a backend. RedisAddr wins over FilePath; with neither set
// values live in memory for the life of the process.
type Options struct {
	RedisAddr string
	RedisDB   int
	FilePath  string
}

// Open builds a Prefs for the selected backend.
func Open(opts Options) (*Prefs, error) {
	switch {
	case opts.RedisAddr != "":
		e, err := OpenRedisEngine(opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		logging.Infof("prefs: using redis at %s db %d", opts.RedisAddr, opts.RedisDB)
		return New(e), nil
	case opts.FilePath != "":
		e, err := OpenFileEngine(opts.FilePath)
		if err != nil {
			return nil, errors.Wrap(err, "prefs")
		}
		logging.Infof("prefs: using file %s", opts.FilePath)
		return New(e), nil
	default:
		logging.Warnf("prefs: no backend configured, values will not survive a restart")
		return New(NewMemoryEngine()), nil
	}
}
