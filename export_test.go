package hrcsim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// rootNodeJSON is player 1 at the root: fold ends the hand, raise(200)
// leads to node 1.
const rootNodeJSON = `{
  "player": 1,
  "street": 0,
  "children": 1,
  "sequence": [],
  "actions": [
    {"type": "F", "amount": 0},
    {"type": "R", "amount": 200, "node": 1}
  ],
  "hands": {
    "AhKd": {"weight": 1, "played": [0.25, 0.75], "evs": [0, 1.5]},
    "7c2d": {"weight": 0.5, "played": [1, 0], "evs": [0, -2]}
  },
  "solver": {"iterations": 1200}
}`

// raiseNodeJSON is player 2 facing the raise; calling ends the hand.
const raiseNodeJSON = `{
  "player": 2,
  "street": 0,
  "children": 0,
  "sequence": [{"player": 1, "type": "R", "amount": 200}],
  "actions": [{"type": "C", "amount": 0, "node": null}],
  "hands": {
    "QsQc": {"weight": 0.75, "played": [1], "evs": [3.25]}
  }
}`

const settingsJSON = `{
  "handdata": {"stacks": [1000, 1000], "blinds": [50, 100], "skipSb": false, "movingBu": true, "anteType": "REGULAR"},
  "treeconfig": {"mode": "FULL"},
  "engine": {
    "type": "MONTECARLO",
    "maxactive": 2,
    "configuration": {"abstractions": [{"buckets": 169}, {"buckets": 64}, {"buckets": 32}, {"buckets": 16}]}
  },
  "eqmodel": {"rakecap": 3, "rakepct": 0.05, "id": "chipev", "nfnd": false, "raked": true}
}`

// writeExport creates an export directory holding the given node files
// (file name => content) and, if settings is non-empty, a settings file.
func writeExport(t *testing.T, settings string, nodes map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if settings != "" {
		writeFile(t, filepath.Join(dir, "settings.json"), settings)
	}

	nodeDir := filepath.Join(dir, NodesDirName)
	if err := os.Mkdir(nodeDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range nodes {
		writeFile(t, filepath.Join(nodeDir, name), content)
	}

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func twoNodeExport(t *testing.T) string {
	return writeExport(t, settingsJSON, map[string]string{
		"0.json": rootNodeJSON,
		"1.json": raiseNodeJSON,
	})
}

// edit decodes a node document, applies fn and re-encodes it.
func edit(t *testing.T, doc string, fn func(d map[string]interface{})) string {
	t.Helper()
	var d map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		t.Fatal(err)
	}

	fn(d)
	buf, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}

	return string(buf)
}
