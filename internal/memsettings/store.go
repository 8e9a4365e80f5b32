// Package memsettings provides the in-memory reference implementation of the
// settings.Settings contract.
//
// The store keeps one tri-state flag per feature (enabled, active,
// deactivated) plus a flat key/value map for configuration values, and
// supports the one-way PreventChanges lock.
//
// It is intentionally unsynchronized: the configuration phase is
// single-threaded by contract, and after PreventChanges the store is
// read-only anyway.
package memsettings

import "github.com/vk/featbus/internal/settings"

// flagState is the per-feature enablement state.
type flagState int

const (
	flagUnset flagState = iota
	flagEnabled
	flagActive
	flagDeactivated
)

// Store is the in-memory settings store.
type Store struct {
	flags  map[string]flagState
	values map[string]any
	locked bool
}

// compile-time contract check
var _ settings.Settings = (*Store)(nil)

// New creates an empty, unlocked store.
func New() *Store {
	return &Store{
		flags:  make(map[string]flagState),
		values: make(map[string]any),
	}
}

// IsFeatureEnabled reports whether the feature is enabled or already active.
func (s *Store) IsFeatureEnabled(name string) bool {
	state := s.flags[name]
	return state == flagEnabled || state == flagActive
}

// EnableFeatureByDefault enables the feature only when no state has been
// recorded for it yet.
func (s *Store) EnableFeatureByDefault(name string) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	if s.flags[name] == flagUnset {
		s.flags[name] = flagEnabled
	}
	return nil
}

// EnableFeature force-enables the feature.
func (s *Store) EnableFeature(name string) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	s.flags[name] = flagEnabled
	return nil
}

// DisableFeature marks the feature as deactivated.
func (s *Store) DisableFeature(name string) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	s.flags[name] = flagDeactivated
	return nil
}

// MarkFeatureAsActive records a successful activation.
func (s *Store) MarkFeatureAsActive(name string) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	s.flags[name] = flagActive
	return nil
}

// MarkFeatureAsDeactivated records a failed activation.
func (s *Store) MarkFeatureAsDeactivated(name string) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	s.flags[name] = flagDeactivated
	return nil
}

// PreventChanges locks the store against all further mutation.
func (s *Store) PreventChanges() {
	s.locked = true
}

// Locked reports whether PreventChanges has been called.
func (s *Store) Locked() bool {
	return s.locked
}

// Get returns the configuration value stored under key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores a configuration value, replacing any existing one.
func (s *Store) Set(key string, value any) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	s.values[key] = value
	return nil
}

// SetDefault stores a configuration value only when the key is still unset.
func (s *Store) SetDefault(key string, value any) error {
	if s.locked {
		return settings.ErrChangesPrevented
	}
	if _, ok := s.values[key]; !ok {
		s.values[key] = value
	}
	return nil
}
