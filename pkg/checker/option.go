package checker

// Option is the default option record
type Option[V comparable] struct {
	Value    V
	Label    string
	Disabled bool
}

// Accessor reads the identity and disabled flag of an option record.
// It lets a Checker work over any host-supplied option shape.
type Accessor[O any, V comparable] struct {
	Value    func(O) V
	Disabled func(O) bool
}

// OptionAccessor returns the accessor for the default Option record
func OptionAccessor[V comparable]() Accessor[Option[V], V] {
	return Accessor[Option[V], V]{
		Value:    func(o Option[V]) V { return o.Value },
		Disabled: func(o Option[V]) bool { return o.Disabled },
	}
}

// Record is a dynamically shaped option, e.g. one decoded from a config file
type Record = map[string]any

const (
	DefaultValueField    = "value"
	DefaultDisabledField = "disabled"
)

// FieldAccessor maps Record fields by name. Empty names fall back to
// DefaultValueField and DefaultDisabledField.
//
// Only a disabled field holding exactly true blocks an option; a missing or
// non-bool field leaves it enabled. Values must be comparable at runtime.
func FieldAccessor(valueField, disabledField string) Accessor[Record, any] {
	if valueField == "" {
		valueField = DefaultValueField
	}
	if disabledField == "" {
		disabledField = DefaultDisabledField
	}
	return Accessor[Record, any]{
		Value: func(r Record) any { return r[valueField] },
		Disabled: func(r Record) bool {
			disabled, ok := r[disabledField].(bool)
			return ok && disabled
		},
	}
}
