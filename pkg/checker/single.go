package checker

// Single is the radio variant: at most one selected value, replaced on every check
type Single[O any, V comparable] struct {
	base[O, V]
	value V
	set   bool
}

// NewSingle builds a Single checker. cfg.Mode is forced to ModeSingle.
func NewSingle[O any, V comparable](cfg Config[O, V]) (*Single[O, V], error) {
	cfg.Mode = ModeSingle
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Single[O, V]{}
	if len(cfg.Initial) == 1 {
		s.value, s.set = cfg.Initial[0], true
	}
	s.init(cfg)
	return s, nil
}

// Mode returns ModeSingle
func (s *Single[O, V]) Mode() Mode { return ModeSingle }

// Value returns the selected value, if any
func (s *Single[O, V]) Value() (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

// Selection returns the selected value as a zero or one element slice
func (s *Single[O, V]) Selection() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectionLocked()
}

func (s *Single[O, V]) selectionLocked() []V {
	if !s.set {
		return []V{}
	}
	return []V{s.value}
}

// Len returns 1 when a value is selected, otherwise 0
func (s *Single[O, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set {
		return 1
	}
	return 0
}

// IsActive reports whether value is the selected one
func (s *Single[O, V]) IsActive(value V) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set && s.value == value
}

// IsAllActive reports whether the selection count equals the enabled option count
func (s *Single[O, V]) IsAllActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selectionLocked()) == len(s.enabledLocked())
}

// Check selects the option's value, replacing any previous one.
// Disabled options are ignored.
func (s *Single[O, V]) Check(option O) {
	value := s.cfg.Accessor.Value(option)
	if s.cfg.Accessor.Disabled(option) {
		s.reject(value, ReasonDisabled)
		return
	}

	s.mu.Lock()
	if s.set && s.value == value {
		s.mu.Unlock()
		return
	}
	removed := s.selectionLocked()
	s.value, s.set = value, true
	s.unlock(SelectionChangedEvent[V]{Added: []V{value}, Removed: removed, Selection: []V{value}})
}

// CheckAll is not supported by radio semantics and is always rejected
func (s *Single[O, V]) CheckAll() {
	var zero V
	s.reject(zero, ReasonUnsupported)
}

// SetOptions replaces the option list. With PruneStale set, a selected value
// missing from the new list is cleared.
func (s *Single[O, V]) SetOptions(options []O) {
	s.mu.Lock()
	replaced := s.replaceLocked(options)

	var pruned Event
	if s.cfg.PruneStale && s.set && !s.hasValueLocked(s.value) {
		pruned = SelectionChangedEvent[V]{Removed: []V{s.value}, Selection: []V{}}
		var zero V
		s.value, s.set = zero, false
	}
	s.logger.Debug("options replaced", "total", replaced.Total, "enabled", replaced.Enabled)
	s.unlock(replaced, pruned)
}
