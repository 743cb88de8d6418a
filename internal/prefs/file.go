package prefs

import (
	"os"
	"sync"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

const fileSection = "prefs"

// FileEngine persists values to an ini file, saving on every Put.
type FileEngine struct {
	mu   sync.Mutex
	path string
	file *ini.File
}

// OpenFileEngine loads path, creating an empty store if it does not exist.
func OpenFileEngine(path string) (*FileEngine, error) {
	var (
		f   *ini.File
		err error
	)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		f = ini.Empty()
	} else {
		f, err = ini.Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open prefs %s", path)
		}
	}
	return &FileEngine{path: path, file: f}, nil
}

func (e *FileEngine) Get(key string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sec := e.file.Section(fileSection)
	if !sec.HasKey(key) {
		return "", false, nil
	}
	return sec.Key(key).String(), true, nil
}

func (e *FileEngine) Put(key, val string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.file.Section(fileSection).Key(key).SetValue(val)
	if err := e.file.SaveTo(e.path); err != nil {
		return errors.Wrapf(err, "save prefs %s", e.path)
	}
	return nil
}

func (e *FileEngine) Close() error {
	return nil
}
