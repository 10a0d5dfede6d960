package checker

import "slices"

// Multi is the checkbox variant: an ordered, duplicate-free selection bounded
// by Min and the effective maximum.
type Multi[O any, V comparable] struct {
	base[O, V]
	selected []V
}

// NewMulti builds a Multi checker. cfg.Mode is forced to ModeMulti.
func NewMulti[O any, V comparable](cfg Config[O, V]) (*Multi[O, V], error) {
	cfg.Mode = ModeMulti
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Multi[O, V]{selected: slices.Clone(cfg.Initial)}
	if m.selected == nil {
		m.selected = []V{}
	}
	m.init(cfg)
	return m, nil
}

// Mode returns ModeMulti
func (m *Multi[O, V]) Mode() Mode { return ModeMulti }

// Selection returns a copy of the selected values in insertion order
func (m *Multi[O, V]) Selection() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.selected)
}

// Len returns the number of selected values
func (m *Multi[O, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.selected)
}

// EffectiveMax returns Max when set, otherwise the number of enabled options
func (m *Multi[O, V]) EffectiveMax() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effectiveMaxLocked()
}

func (m *Multi[O, V]) effectiveMaxLocked() int {
	if m.cfg.Max > 0 {
		return m.cfg.Max
	}
	return len(m.enabledLocked())
}

// IsActive reports whether value is selected
func (m *Multi[O, V]) IsActive(value V) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.selected, value)
}

// IsAllActive reports whether the selection count equals the enabled option count
func (m *Multi[O, V]) IsAllActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.selected) == len(m.enabledLocked())
}

// Check toggles the option's value.
//
// Deselecting is refused while the selection is at Min. Selecting is refused
// once the effective maximum is reached, except when that maximum is 1: the
// new value then replaces the whole selection. Disabled options are ignored.
func (m *Multi[O, V]) Check(option O) {
	value := m.cfg.Accessor.Value(option)
	if m.cfg.Accessor.Disabled(option) {
		m.reject(value, ReasonDisabled)
		return
	}

	m.mu.Lock()
	if i := slices.Index(m.selected, value); i >= 0 {
		if len(m.selected) <= m.cfg.Min {
			m.unlock(m.rejection(value, ReasonMinReached))
			return
		}
		m.selected = slices.Delete(m.selected, i, i+1)
		m.unlock(SelectionChangedEvent[V]{Removed: []V{value}, Selection: slices.Clone(m.selected)})
		return
	}

	limit := m.effectiveMaxLocked()
	if limit == 1 {
		removed := m.selected
		m.selected = []V{value}
		m.unlock(SelectionChangedEvent[V]{Added: []V{value}, Removed: removed, Selection: []V{value}})
		return
	}
	if len(m.selected) >= limit {
		m.unlock(m.rejection(value, ReasonMaxReached))
		return
	}
	m.selected = append(m.selected, value)
	m.unlock(SelectionChangedEvent[V]{Added: []V{value}, Selection: slices.Clone(m.selected)})
}

// CheckAll toggles between every enabled option and nothing.
// Selecting all ignores Min and Max.
func (m *Multi[O, V]) CheckAll() {
	m.mu.Lock()
	enabled := m.enabledLocked()
	if len(m.selected) == len(enabled) {
		removed := m.selected
		m.selected = []V{}
		if len(removed) == 0 {
			m.mu.Unlock()
			return
		}
		m.unlock(SelectionClearedEvent[V]{Removed: removed})
		return
	}

	all := make([]V, 0, len(enabled))
	for _, o := range enabled {
		all = append(all, m.cfg.Accessor.Value(o))
	}
	m.selected = all
	m.unlock(AllSelectedEvent[V]{Selection: slices.Clone(all)})
}

// SetOptions replaces the option list. With PruneStale set, selected values
// missing from the new list are dropped.
func (m *Multi[O, V]) SetOptions(options []O) {
	m.mu.Lock()
	replaced := m.replaceLocked(options)

	var pruned Event
	if m.cfg.PruneStale {
		kept := make([]V, 0, len(m.selected))
		var removed []V
		for _, v := range m.selected {
			if m.hasValueLocked(v) {
				kept = append(kept, v)
			} else {
				removed = append(removed, v)
			}
		}
		if len(removed) > 0 {
			m.selected = kept
			pruned = SelectionChangedEvent[V]{Removed: removed, Selection: slices.Clone(kept)}
		}
	}
	m.logger.Debug("options replaced", "total", replaced.Total, "enabled", replaced.Enabled)
	m.unlock(replaced, pruned)
}
