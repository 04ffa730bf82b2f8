// Package settings reads the settings.json file of an exported hand.
//
// The node graph never consults Settings; it is carried alongside a hand
// for callers that need the stakes, engine or rake parameters.
package settings

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// FileName is the name of the settings file within an export directory.
const FileName = "settings.json"

// Sections that every settings file must contain.
var requiredSections = []string{"handdata", "treeconfig", "engine", "eqmodel"}

// Street indexes the per-street engine abstractions.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetStr = [...]string{
	"Preflop",
	"Flop",
	"Turn",
	"River",
}

func (s Street) String() string {
	if s < Preflop || s > River {
		return "Invalid"
	}

	return streetStr[s]
}

// Settings is a read-only view of a settings file.
type Settings struct {
	raw []byte
}

// Load reads and parses the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "settings %s", path)
	}

	return s, nil
}

// Parse validates data as a settings document.
func Parse(data []byte) (*Settings, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("expected object")
	}

	for _, section := range requiredSections {
		if !root.Get(section).IsObject() {
			return nil, errors.Errorf("missing section %q", section)
		}
	}

	return &Settings{raw: append([]byte(nil), data...)}, nil
}

// Get looks up any field of the settings document.
func (s *Settings) Get(path string) gjson.Result {
	return gjson.GetBytes(s.raw, path)
}

// MarshalJSON returns the settings document as read.
func (s *Settings) MarshalJSON() ([]byte, error) {
	return append([]byte(nil), s.raw...), nil
}

func (s *Settings) floats(path string) []float64 {
	values := s.Get(path).Array()
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = v.Float()
	}

	return result
}

// Stacks returns the starting stack of each seat.
func (s *Settings) Stacks() []float64 { return s.floats("handdata.stacks") }

// Blinds returns the blind structure as exported.
func (s *Settings) Blinds() []float64 { return s.floats("handdata.blinds") }

func (s *Settings) SkipSB() bool { return s.Get("handdata.skipSb").Bool() }

func (s *Settings) MovingButton() bool { return s.Get("handdata.movingBu").Bool() }

// AnteType returns the ante type in its exported (string) form.
func (s *Settings) AnteType() string { return s.Get("handdata.anteType").String() }

// TreeMode returns the tree-building mode of the solve.
func (s *Settings) TreeMode() string { return s.Get("treeconfig.mode").String() }

func (s *Settings) EngineType() string { return s.Get("engine.type").String() }

// MaxActive returns the maximum number of active players the engine solves.
func (s *Settings) MaxActive() int { return int(s.Get("engine.maxactive").Int()) }

// Abstractions returns the number of buckets the engine used on street.
func (s *Settings) Abstractions(street Street) int {
	path := "engine.configuration.abstractions." + strconv.Itoa(int(street)) + ".buckets"
	return int(s.Get(path).Int())
}

func (s *Settings) RakeCap() float64 { return s.Get("eqmodel.rakecap").Float() }

func (s *Settings) RakePct() float64 { return s.Get("eqmodel.rakepct").Float() }

// EqModelID returns the id of the equity model, e.g. "chipev".
func (s *Settings) EqModelID() string { return s.Get("eqmodel.id").String() }

func (s *Settings) NFND() bool { return s.Get("eqmodel.nfnd").Bool() }

func (s *Settings) Raked() bool { return s.Get("eqmodel.raked").Bool() }
