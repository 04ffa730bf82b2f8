package hrcsim

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// HandStrategy is the solver output for one hand combination at a node.
type HandStrategy struct {
	hand   string
	weight float64
	// played and evs are indexed like the owning node's actions.
	played []float64
	evs    []float64
	raw    json.RawMessage
}

// Hand returns the hand-combination key, e.g. "AhKd".
func (hs HandStrategy) Hand() string { return hs.hand }

// Weight returns the probability mass of the hand at this node.
func (hs HandStrategy) Weight() float64 { return hs.weight }

// Played returns the frequency with which each action is taken.
func (hs HandStrategy) Played() []float64 {
	return append([]float64(nil), hs.played...)
}

// EVs returns the expected value of each action.
func (hs HandStrategy) EVs() []float64 {
	return append([]float64(nil), hs.evs...)
}

// MarshalJSON returns the hand's object exactly as it was exported.
func (hs HandStrategy) MarshalJSON() ([]byte, error) {
	return append([]byte(nil), hs.raw...), nil
}

func parseHandStrategy(hand string, raw json.RawMessage, nActions int) (HandStrategy, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return HandStrategy{}, err
	}

	hs := HandStrategy{hand: hand, raw: append(json.RawMessage(nil), raw...)}
	if err := o.nonNegative("weight", &hs.weight); err != nil {
		return HandStrategy{}, err
	}
	if err := o.required("played", &hs.played); err != nil {
		return HandStrategy{}, err
	}
	if err := o.required("evs", &hs.evs); err != nil {
		return HandStrategy{}, err
	}

	if len(hs.played) != nActions {
		return HandStrategy{}, &fieldError{field: "played",
			err: errors.Errorf("%d frequencies for %d actions", len(hs.played), nActions)}
	}
	if len(hs.evs) != nActions {
		return HandStrategy{}, &fieldError{field: "evs",
			err: errors.Errorf("%d values for %d actions", len(hs.evs), nActions)}
	}

	return hs, nil
}
