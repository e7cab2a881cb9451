// Package api - wire payload to engine input conversion.
package api

import (
	"fmt"

	"stacksafe/core/engine"
	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

func toEngineItems(payloads []ItemPayload) ([]engine.Item, error) {
	items := make([]engine.Item, 0, len(payloads))
	for i, payload := range payloads {
		unit, err := types.ParseUnit(payload.Unit)
		if err != nil {
			return nil, errors.InvalidStackItem(fmt.Sprintf("item %d (%s): %v", i, payload.Name, err))
		}

		dose, err := types.NewDose(payload.Dose.String(), unit)
		if err != nil {
			return nil, errors.InvalidStackItem(fmt.Sprintf("item %d (%s): invalid dose %q", i, payload.Name, payload.Dose))
		}

		items = append(items, engine.Item{
			Name: payload.Name,
			Dose: dose,
			Role: types.Role(payload.Role),
		})
	}
	return items, nil
}
