package types

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stacksafe/internal/errors"
)

// Unit is a dose unit. Mass units interconvert; IU is its own dimension
// because IU-to-mass factors are nutrient-specific.
type Unit string

const (
	UnitMicrogram Unit = "mcg"
	UnitMilligram Unit = "mg"
	UnitGram      Unit = "g"
	UnitKilogram  Unit = "kg"
	UnitIU        Unit = "iu"
)

// IsValid checks if the unit is known
func (u Unit) IsValid() bool {
	switch u {
	case UnitMicrogram, UnitMilligram, UnitGram, UnitKilogram, UnitIU:
		return true
	default:
		return false
	}
}

// IsMass reports whether the unit is a mass unit
func (u Unit) IsMass() bool {
	switch u {
	case UnitMicrogram, UnitMilligram, UnitGram, UnitKilogram:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (u Unit) String() string {
	return string(u)
}

// ParseUnit parses a unit string
func ParseUnit(raw string) (Unit, error) {
	unit := Unit(raw)
	if !unit.IsValid() {
		return "", fmt.Errorf("unknown unit: %q", raw)
	}
	return unit, nil
}

// Dose is a declared amount with a unit.
// NEVER use float64 for dose calculations.
type Dose struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   Unit            `json:"unit"`
}

// NewDose creates a Dose from a decimal string
func NewDose(amount string, unit Unit) (Dose, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Dose{}, err
	}
	if !unit.IsValid() {
		return Dose{}, fmt.Errorf("unknown unit: %q", unit)
	}
	return Dose{Amount: d, Unit: unit}, nil
}

// NewDoseFromDecimal creates a Dose from a decimal
func NewDoseFromDecimal(amount decimal.Decimal, unit Unit) Dose {
	return Dose{Amount: amount, Unit: unit}
}

// ZeroDose creates a zero dose in the given unit
func ZeroDose(unit Unit) Dose {
	return Dose{Amount: decimal.Zero, Unit: unit}
}

// Add adds two doses. Both must carry the same unit; conversion is the
// nutrient aggregator's job and never happens implicitly here.
func (d Dose) Add(other Dose) (Dose, error) {
	if d.Unit != other.Unit {
		return Dose{}, errors.UnitMismatch(other.Unit.String(), d.Unit.String())
	}
	return Dose{Amount: d.Amount.Add(other.Amount), Unit: d.Unit}, nil
}

// Cmp compares two doses of the same unit
func (d Dose) Cmp(other Dose) (int, error) {
	if d.Unit != other.Unit {
		return 0, errors.UnitMismatch(other.Unit.String(), d.Unit.String())
	}
	return d.Amount.Cmp(other.Amount), nil
}

// IsPositive returns true if the amount is greater than zero
func (d Dose) IsPositive() bool {
	return d.Amount.IsPositive()
}

// String returns the formatted dose
func (d Dose) String() string {
	return fmt.Sprintf("%s %s", d.Amount.String(), d.Unit)
}
