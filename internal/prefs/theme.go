package prefs

import (
	"fmt"

	"go.uber.org/zap"

	"ragclient/internal/kvstore"
)

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), true
	}
	return "", false
}

// Store persists UI preferences.
type Store struct {
	kv       kvstore.Storage
	fallback Theme
	logger   *zap.Logger
}

// New returns a Store that reports fallback until a theme is saved.
func New(kv kvstore.Storage, fallback Theme, logger *zap.Logger) *Store {
	if _, ok := ParseTheme(string(fallback)); !ok {
		fallback = ThemeDark
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, fallback: fallback, logger: logger}
}

// Theme returns the saved theme, or the fallback when none is saved or the
// saved value is unknown.
func (s *Store) Theme() Theme {
	v, ok, err := s.kv.Get(kvstore.KeyTheme)
	if err != nil {
		s.logger.Warn("read theme failed", zap.Error(err))
		return s.fallback
	}
	if !ok {
		return s.fallback
	}
	t, valid := ParseTheme(v)
	if !valid {
		return s.fallback
	}
	return t
}

// SetTheme saves t.
func (s *Store) SetTheme(t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return fmt.Errorf("unknown theme %q", t)
	}
	if err := s.kv.Put(kvstore.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Toggle flips between dark and light and saves the result.
func (s *Store) Toggle() (Theme, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, s.SetTheme(next)
}
