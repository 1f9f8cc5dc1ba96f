package layout

import "math"

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content/flex
	UnitFixed               // Absolute terminal cells
	UnitPercent             // Percentage of parent's available space
)

// Value represents a dimension that can be fixed, percentage, or auto.
type Value struct {
	Amount float64
	Unit   Unit
}

// Undefined marks an unconstrained available size.
var Undefined = math.NaN()

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// Auto returns a Value that should be computed from content/flex.
func Auto() Value {
	return Value{Unit: UnitAuto}
}

// Fixed returns a Value representing an absolute number of terminal cells.
func Fixed(n float64) Value {
	return Value{Amount: n, Unit: UnitFixed}
}

// Percent returns a Value representing a percentage of available space.
// The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Value {
	return Value{Amount: p, Unit: UnitPercent}
}

// Resolve computes the value against the owner size. The second result is
// false for Auto values and for percentages of an undefined owner.
func (v Value) Resolve(owner float64) (float64, bool) {
	switch v.Unit {
	case UnitFixed:
		return v.Amount, true
	case UnitPercent:
		if IsUndefined(owner) {
			return 0, false
		}
		return owner * v.Amount / 100.0, true
	default:
		return 0, false
	}
}

// IsAuto returns true if this value should be computed from content/flex.
func (v Value) IsAuto() bool {
	return v.Unit == UnitAuto
}
