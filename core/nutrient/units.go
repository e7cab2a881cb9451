// Package nutrient - dose unit conversion.
// Mass units interconvert exactly; IU is its own dimension because IU-to-mass
// factors vary per nutrient and belong in a knowledge base revision, not here.
package nutrient

import (
	"github.com/shopspring/decimal"

	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

var massInMicrograms = map[types.Unit]decimal.Decimal{
	types.UnitMicrogram: decimal.NewFromInt(1),
	types.UnitMilligram: decimal.NewFromInt(1_000),
	types.UnitGram:      decimal.NewFromInt(1_000_000),
	types.UnitKilogram:  decimal.NewFromInt(1_000_000_000),
}

// Convert converts a dose to the target unit. Conversion between mass and IU
// is a unit mismatch error, never a silent coercion.
func Convert(dose types.Dose, target types.Unit) (types.Dose, error) {
	if dose.Unit == target {
		return dose, nil
	}

	from, fromMass := massInMicrograms[dose.Unit]
	to, toMass := massInMicrograms[target]
	if !fromMass || !toMass {
		return types.Dose{}, errors.UnitMismatch(dose.Unit.String(), target.String())
	}

	amount := dose.Amount.Mul(from).Div(to)
	return types.NewDoseFromDecimal(amount, target), nil
}
