package hrcsim

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// Node is one decision point of an exported hand. A Node is immutable
// once parsed; accessors return copies.
type Node struct {
	id   int
	path string

	player   int
	street   int
	children int
	history  History
	// actions are in the order used by TakeAction.
	actions []Action
	hands   map[string]HandStrategy

	// raw is the file content exactly as read.
	raw []byte
}

// ParseNode parses the content of the node file at path. Every required
// field must be present: there are no defaults.
func ParseNode(id int, path string, data []byte) (*Node, error) {
	n := &Node{
		id:   id,
		path: path,
		raw:  append([]byte(nil), data...),
	}

	if err := n.parse(); err != nil {
		corrupt := &CorruptNodeError{Path: path, Err: err}
		if fe, ok := err.(*fieldError); ok {
			corrupt.Field = fe.field
			corrupt.Err = fe.err
		}

		return nil, corrupt
	}

	return n, nil
}

func (n *Node) parse() error {
	o, err := decodeObject(n.raw)
	if err != nil {
		return err
	}

	if err := o.required("player", &n.player); err != nil {
		return err
	}
	if err := o.required("street", &n.street); err != nil {
		return err
	}
	if err := o.required("children", &n.children); err != nil {
		return err
	}

	var sequence []json.RawMessage
	if err := o.required("sequence", &sequence); err != nil {
		return err
	}
	n.history = make(History, len(sequence))
	for i, raw := range sequence {
		if n.history[i], err = parsePreviousAction(raw); err != nil {
			return within(indexed("sequence", i), err)
		}
	}

	var actions []json.RawMessage
	if err := o.required("actions", &actions); err != nil {
		return err
	}
	n.actions = make([]Action, len(actions))
	for i, raw := range actions {
		if n.actions[i], err = parseAction(raw, n.player); err != nil {
			return within(indexed("actions", i), err)
		}
	}

	var hands map[string]json.RawMessage
	if err := o.required("hands", &hands); err != nil {
		return err
	}
	keys := make([]string, 0, len(hands))
	for key := range hands {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	n.hands = make(map[string]HandStrategy, len(hands))
	for _, key := range keys {
		hs, err := parseHandStrategy(key, hands[key], len(n.actions))
		if err != nil {
			return within("hands."+key, err)
		}
		n.hands[key] = hs
	}

	return nil
}

// ID returns the node id, taken from the node's file name.
func (n *Node) ID() int { return n.id }

// Path returns the canonical path of the node file.
func (n *Node) Path() string { return n.path }

// Player returns the acting player.
func (n *Node) Player() int { return n.player }

// Street returns the betting round.
func (n *Node) Street() int { return n.street }

// Children returns the child count recorded in the node file. It is not
// checked against NumActions.
func (n *Node) Children() int { return n.children }

func (n *Node) History() History {
	return append(History(nil), n.history...)
}

func (n *Node) Actions() []Action {
	return append([]Action(nil), n.actions...)
}

func (n *Node) NumActions() int {
	return len(n.actions)
}

// Action returns the i'th available action.
func (n *Node) Action(i int) (Action, error) {
	if i < 0 || i >= len(n.actions) {
		return Action{}, n.invalidAction(i)
	}

	return n.actions[i], nil
}

func (n *Node) invalidAction(i int) error {
	return &AddressingError{
		Reason: reasonInvalidActionIndex,
		Ref:    fmt.Sprintf("%d (%v has %d actions)", i, n, len(n.actions)),
	}
}

// TakeAction returns a reference to the node reached by taking the i'th
// action. ok is false if the action ends the hand.
func (n *Node) TakeAction(i int) (next Ref, ok bool, err error) {
	a, err := n.Action(i)
	if err != nil {
		return Ref{}, false, err
	}

	id, ok := a.Successor()
	if !ok {
		return Ref{}, false, nil
	}

	return IDRef(id), true, nil
}

// Hand returns the strategy of the given hand combination.
func (n *Node) Hand(key string) (HandStrategy, bool) {
	hs, ok := n.hands[key]
	return hs, ok
}

func (n *Node) Hands() map[string]HandStrategy {
	result := make(map[string]HandStrategy, len(n.hands))
	for key, hs := range n.hands {
		result[key] = hs
	}

	return result
}

// HandKeys returns the hand combinations of the node in sorted order.
func (n *Node) HandKeys() []string {
	keys := make([]string, 0, len(n.hands))
	for key := range n.hands {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HandsJSON returns each hand's strategy object as exported.
func (n *Node) HandsJSON() map[string]json.RawMessage {
	result := make(map[string]json.RawMessage, len(n.hands))
	for key, hs := range n.hands {
		result[key] = append(json.RawMessage(nil), hs.raw...)
	}

	return result
}

// RawJSON returns the node file content as it was read.
func (n *Node) RawJSON() []byte {
	return append([]byte(nil), n.raw...)
}

// MarshalJSON implements json.Marshaler with the original payload.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.RawJSON(), nil
}

// Get looks up a field of the original payload, including fields
// that Node does not model. See gjson for the path syntax.
func (n *Node) Get(path string) gjson.Result {
	return gjson.GetBytes(n.raw, path)
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(id=%d)", n.id)
}
