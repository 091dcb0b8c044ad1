// package language tracks the catalog language preference.
//
// The current code is persisted under app.language and attached as a query
// parameter to every catalog request. Changing it notifies subscribers so
// views can re-fetch localized data.
package language

import (
	"context"
	"slices"
)

// Names for display, keyed by language code.
var names = map[string]string{
	"en": "English",
	"ar": "العربية",
	"fr": "Français",
	"zh": "中文",
}

// Store is the subset of the repository the service persists through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Service holds the current language as observable state.
type Service struct {
	store       Store
	storeKey    string
	supported   []string
	current     string
	subscribers []func(string)
}

// NewService creates a Service restoring the persisted code, falling back to
// fallback when nothing is stored or the stored code is no longer supported.
func NewService(ctx context.Context, store Store, storeKey string, supported []string, fallback string) *Service {
	s := &Service{
		store:     store,
		storeKey:  storeKey,
		supported: supported,
		current:   fallback,
	}

	if data, err := store.Get(ctx, storeKey); err == nil && len(data) > 0 {
		if code := string(data); s.Supports(code) {
			s.current = code
		}
	}

	return s
}

// Current returns the active language code.
func (s *Service) Current() string {
	return s.current
}

// Supports reports whether code is a configured language.
func (s *Service) Supports(code string) bool {
	return slices.Contains(s.supported, code)
}

// Supported returns the configured language codes.
func (s *Service) Supported() []string {
	return s.supported
}

// Set switches the active language, persists it, and notifies subscribers.
// Unsupported codes are ignored.
func (s *Service) Set(ctx context.Context, code string) error {
	if !s.Supports(code) || code == s.current {
		return nil
	}

	s.current = code
	if err := s.store.Set(ctx, s.storeKey, []byte(code)); err != nil {
		return err
	}

	for _, fn := range s.subscribers {
		fn(code)
	}
	return nil
}

// Subscribe registers fn to run synchronously after every language change.
func (s *Service) Subscribe(fn func(code string)) {
	s.subscribers = append(s.subscribers, fn)
}

// Name returns the display name for code, or the code itself when unknown.
func (s *Service) Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// IsRTL reports whether the active language renders right to left.
func (s *Service) IsRTL() bool {
	return s.current == "ar"
}
