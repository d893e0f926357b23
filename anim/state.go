package anim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Neumenon/flicker/flicker"
)

// StateStore persists the user's display settings between sessions. The
// host application decides where and how; FileStore is the stock
// implementation.
type StateStore interface {
	Load() (Config, error)
	Save(Config) error
}

// FileStore keeps the settings in a small JSON file. Only values that
// differ from the defaults are written; a setting returned to its default
// disappears from the file, and if everything is default the file is
// removed. Loading a missing file yields DefaultConfig.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// fileState is the on-disk shape. Pointer fields distinguish an absent
// key from a stored zero.
type fileState struct {
	BarWidth *int   `json:"barwidth,omitempty"`
	DelayMS  *int64 `json:"delay_ms,omitempty"`
}

// Load reads the stored settings, filling defaults for absent keys.
// Out-of-range stored values are clamped rather than rejected.
func (s *FileStore) Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load state: %w", err)
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return cfg, fmt.Errorf("load state %s: %w", s.Path, err)
	}
	if st.BarWidth != nil {
		cfg.BarWidth = *st.BarWidth
	}
	if st.DelayMS != nil {
		cfg.Delay = time.Duration(*st.DelayMS) * time.Millisecond
	}
	return cfg.Clamp(), nil
}

// Save writes the settings, omitting defaults. An all-default config
// removes the file.
func (s *FileStore) Save(cfg Config) error {
	var st fileState
	if cfg.BarWidth != flicker.DefaultBarWidth {
		st.BarWidth = &cfg.BarWidth
	}
	if cfg.Delay != DefaultDelay {
		ms := cfg.Delay.Milliseconds()
		st.DelayMS = &ms
	}

	if st.BarWidth == nil && st.DelayMS == nil {
		err := os.Remove(s.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("save state: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(&st, "", "  ")
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
