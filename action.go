package hrcsim

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ActionKind is the action code used in node files. Codes other than the
// known ones are kept as-is.
type ActionKind string

const (
	Raise ActionKind = "R"
	Fold  ActionKind = "F"
	Call  ActionKind = "C"
)

var actionKindStr = map[ActionKind]string{
	Raise: "Raise",
	Fold:  "Fold",
	Call:  "Call",
}

// Known reports whether k is one of Raise, Fold or Call.
func (k ActionKind) Known() bool {
	_, ok := actionKindStr[k]
	return ok
}

// Name returns the human-readable name of the kind, or the raw code for
// kinds we do not recognize.
func (k ActionKind) Name() string {
	if name, ok := actionKindStr[k]; ok {
		return name
	}

	return string(k)
}

func (k ActionKind) String() string {
	return k.Name()
}

func display(kind ActionKind, amount float64) string {
	if amount > 0 {
		return kind.Name() + "(" + strconv.FormatFloat(amount, 'f', -1, 64) + ")"
	}

	return kind.Name()
}

// Action is an action available to the acting player at a node.
type Action struct {
	// Player is the node's acting player unless the action names one.
	Player int
	Kind   ActionKind
	Amount float64

	successor    int
	hasSuccessor bool
}

// Successor returns the id of the node this action leads to. ok is false
// for terminal actions.
func (a Action) Successor() (id int, ok bool) {
	return a.successor, a.hasSuccessor
}

// Terminal reports whether taking this action ends the hand.
func (a Action) Terminal() bool {
	return !a.hasSuccessor
}

func (a Action) String() string {
	return display(a.Kind, a.Amount)
}

// Record converts the action to the common export form.
func (a Action) Record() ActionRecord {
	player := a.Player
	r := ActionRecord{Player: &player, Type: a.Kind, Amount: a.Amount}
	if a.hasSuccessor {
		next := a.successor
		r.NextID = &next
	}

	return r
}

func parseAction(raw json.RawMessage, player int) (Action, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return Action{}, err
	}

	a := Action{Player: player}
	if err := o.required("type", &a.Kind); err != nil {
		return Action{}, err
	}
	if err := o.nonNegative("amount", &a.Amount); err != nil {
		return Action{}, err
	}
	if _, err := o.optional("player", &a.Player); err != nil {
		return Action{}, err
	}

	a.hasSuccessor, err = o.optional("node", &a.successor)
	if err != nil {
		return Action{}, err
	}
	if a.hasSuccessor && a.successor < 0 {
		return Action{}, &fieldError{field: "node", err: errors.Errorf("negative node id %d", a.successor)}
	}

	return a, nil
}

// PreviousAction is an action already taken on the way to a node.
type PreviousAction struct {
	Player int
	Kind   ActionKind
	Amount float64
}

func (a PreviousAction) String() string {
	return fmt.Sprintf("%d:%s", a.Player, display(a.Kind, a.Amount))
}

// Record converts the action to the common export form.
func (a PreviousAction) Record() ActionRecord {
	player := a.Player
	return ActionRecord{Player: &player, Type: a.Kind, Amount: a.Amount}
}

func parsePreviousAction(raw json.RawMessage) (PreviousAction, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return PreviousAction{}, err
	}

	var a PreviousAction
	if err := o.required("player", &a.Player); err != nil {
		return PreviousAction{}, err
	}
	if err := o.required("type", &a.Kind); err != nil {
		return PreviousAction{}, err
	}
	if err := o.nonNegative("amount", &a.Amount); err != nil {
		return PreviousAction{}, err
	}

	return a, nil
}

// History is the sequence of actions that led to a node, in play order.
type History []PreviousAction

func (h History) String() string {
	parts := make([]string, len(h))
	for i, a := range h {
		parts[i] = a.String()
	}

	return "ActionSequence[" + strings.Join(parts, ", ") + "]"
}

// ActionRecord is the form both action variants are exported in.
// NextID is nil for previous actions and terminal actions.
type ActionRecord struct {
	Player *int       `json:"player"`
	Type   ActionKind `json:"type"`
	Amount float64    `json:"amount"`
	NextID *int       `json:"next_id"`
}

func (r ActionRecord) String() string {
	return display(r.Type, r.Amount)
}
