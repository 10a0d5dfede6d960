// Package checker implements the state machine behind a selectable option list.
//
// A Checker tracks which option values are selected under Single (radio) or
// Multi (checkbox) semantics. In Multi mode the selection is bounded by Min and
// an effective maximum; operations that would break a bound are silent no-ops
// rather than errors, so a caller can forward every click unconditionally.
//
// The option list and the selection are guarded by a single mutex because the
// effective maximum depends on both. Events are published after the lock is
// released, but a second mutex taken before the release keeps delivery in the
// order the state changed, even across concurrent callers.
package checker

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Checker is the selection controller shared by the Single and Multi variants
type Checker[O any, V comparable] interface {
	Mode() Mode
	Options() []O
	EnabledOptions() []O
	SetOptions(options []O)
	Selection() []V
	Len() int
	IsActive(value V) bool
	IsAllActive() bool
	Check(option O)
	CheckAll()
}

// New validates cfg and builds the variant matching cfg.Mode
func New[O any, V comparable](cfg Config[O, V]) (Checker[O, V], error) {
	if cfg.Mode == ModeSingle {
		s, err := NewSingle(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	m, err := NewMulti(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// base holds what both variants share: the option list, lock and outputs
type base[O any, V comparable] struct {
	mu      sync.RWMutex
	pubMu   sync.Mutex // serializes delivery; acquired while mu is still held
	cfg     Config[O, V]
	options []O
	pub     Publisher
	logger  *log.Logger
}

func (b *base[O, V]) init(cfg Config[O, V]) {
	b.cfg = cfg
	b.options = []O{}
	b.pub = cfg.Publisher
	if b.pub == nil {
		b.pub = NullPublisher{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b.logger = logger.WithPrefix("checker")
}

// Options returns a copy of the current option list
func (b *base[O, V]) Options() []O {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.options)
}

// EnabledOptions returns the options not flagged disabled, in list order
func (b *base[O, V]) EnabledOptions() []O {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabledLocked()
}

func (b *base[O, V]) enabledLocked() []O {
	enabled := make([]O, 0, len(b.options))
	for _, o := range b.options {
		if !b.cfg.Accessor.Disabled(o) {
			enabled = append(enabled, o)
		}
	}
	return enabled
}

// replaceLocked swaps in a copy of options
func (b *base[O, V]) replaceLocked(options []O) OptionsReplacedEvent {
	b.options = slices.Clone(options)
	if b.options == nil {
		b.options = []O{}
	}
	return OptionsReplacedEvent{Total: len(b.options), Enabled: len(b.enabledLocked())}
}

// hasValueLocked reports whether some option in the list carries value
func (b *base[O, V]) hasValueLocked(value V) bool {
	for _, o := range b.options {
		if b.cfg.Accessor.Value(o) == value {
			return true
		}
	}
	return false
}

func (b *base[O, V]) reject(value V, reason RejectReason) {
	b.pub.Publish(b.rejection(value, reason))
}

func (b *base[O, V]) rejection(value V, reason RejectReason) Event {
	b.logger.Debug("check rejected", "value", value, "reason", reason)
	return CheckRejectedEvent[V]{Value: value, Reason: reason}
}

// unlock releases the write lock and publishes events. Taking pubMu before
// mu is released orders deliveries the same way as the mutations behind them.
// A Publisher must not call back into the Checker synchronously.
func (b *base[O, V]) unlock(events ...Event) {
	b.pubMu.Lock()
	defer b.pubMu.Unlock()
	b.mu.Unlock()
	b.publish(events...)
}

func (b *base[O, V]) publish(events ...Event) {
	for _, e := range events {
		if e != nil {
			b.pub.Publish(e)
		}
	}
}

var (
	_ Checker[Option[string], string] = (*Multi[Option[string], string])(nil)
	_ Checker[Option[string], string] = (*Single[Option[string], string])(nil)
)
