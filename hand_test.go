package hrcsim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/hrcsim/settings"
)

func TestOpenAndTraverse(t *testing.T) {
	hand, err := Open(twoNodeExport(t))
	require.NoError(t, err)
	require.Empty(t, hand.Warnings())

	nodes := hand.Nodes()
	require.Len(t, nodes, 2)
	require.Equal(t, 0, nodes[0].ID())
	require.Equal(t, 1, nodes[1].ID())
	require.Equal(t, 2, hand.Cache().Len())

	root, err := hand.Lookup(IDRef(0))
	require.NoError(t, err)
	require.Same(t, nodes[0], root)
	require.Equal(t, 1, root.Player())

	ref, ok, err := root.TakeAction(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, IDRef(1), ref)

	raised, err := hand.Lookup(ref)
	require.NoError(t, err)
	require.Same(t, nodes[1], raised)
	require.Equal(t, 2, raised.Player())

	_, ok, err = raised.TakeAction(0)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStep(t *testing.T) {
	hand, err := Open(twoNodeExport(t))
	require.NoError(t, err)
	root, err := hand.Root()
	require.NoError(t, err)

	next, ok, err := hand.Step(root, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, next.ID())

	next, ok, err = hand.Step(root, 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, next)

	_, _, err = hand.Step(root, 5)
	var addrErr *AddressingError
	require.True(t, errors.As(err, &addrErr))
	require.Equal(t, reasonInvalidActionIndex, addrErr.Reason)
}

func TestStepDanglingSuccessor(t *testing.T) {
	dir := writeExport(t, settingsJSON, map[string]string{"0.json": rootNodeJSON})
	hand, err := Open(dir)
	require.NoError(t, err)
	root, err := hand.Root()
	require.NoError(t, err)

	_, ok, err := hand.Step(root, 1)
	require.False(t, ok)
	var addrErr *AddressingError
	require.True(t, errors.As(err, &addrErr), "%v", err)
	require.Equal(t, reasonNodeNotFound, addrErr.Reason)
	require.Equal(t, "1", addrErr.Ref)
}

func TestLookupMissingNode(t *testing.T) {
	hand, err := Open(twoNodeExport(t))
	require.NoError(t, err)

	_, err = hand.Node(999)
	var addrErr *AddressingError
	require.True(t, errors.As(err, &addrErr))
	require.Equal(t, "999", addrErr.Ref)
	require.Contains(t, err.Error(), "999")
}

func TestOpenSkipsCorruptNode(t *testing.T) {
	dir := writeExport(t, settingsJSON, map[string]string{
		"0.json": rootNodeJSON,
		"1.json": raiseNodeJSON,
		"2.json": edit(t, raiseNodeJSON, func(d map[string]interface{}) { delete(d, "hands") }),
	})

	hand, err := Open(dir)
	require.NoError(t, err)
	require.Len(t, hand.Nodes(), 2)

	warnings := hand.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, filepath.Join(hand.NodeDir(), "2.json"), warnings[0].Path)
	var corrupt *CorruptNodeError
	require.True(t, errors.As(warnings[0].Err, &corrupt))
	require.Equal(t, "hands", corrupt.Field)

	_, err = hand.Node(2)
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, "hands", corrupt.Field)

	n, err := hand.Node(1)
	require.NoError(t, err)
	require.Equal(t, 1, n.ID())
}

func TestOpenWarnsOnUnrecognizedEntries(t *testing.T) {
	dir := writeExport(t, settingsJSON, map[string]string{
		"0.json":    rootNodeJSON,
		"1.json":    raiseNodeJSON,
		"notes.txt": "checked by hand",
		"tree.json": rootNodeJSON,
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, NodesDirName, "old"), 0755))

	hand, err := Open(dir)
	require.NoError(t, err)
	require.Len(t, hand.Nodes(), 2)

	paths := make(map[string]DiscoveryWarning)
	for _, w := range hand.Warnings() {
		paths[filepath.Base(w.Path)] = w
	}
	require.Len(t, paths, 3)
	require.Contains(t, paths, "notes.txt")
	require.Contains(t, paths, "old")
	require.Nil(t, paths["notes.txt"].Err)

	var addrErr *AddressingError
	require.True(t, errors.As(paths["tree.json"].Err, &addrErr))
}

func TestOpenSettings(t *testing.T) {
	hand, err := Open(twoNodeExport(t))
	require.NoError(t, err)

	s := hand.Settings()
	require.NotNil(t, s)
	require.Equal(t, []float64{1000, 1000}, s.Stacks())
	require.Equal(t, 16, s.Abstractions(settings.River))
}

func TestOpenWithoutSettings(t *testing.T) {
	dir := writeExport(t, "", map[string]string{"0.json": rootNodeJSON, "1.json": raiseNodeJSON})
	hand, err := Open(dir)
	require.NoError(t, err)
	require.Nil(t, hand.Settings())
	require.Len(t, hand.Nodes(), 2)
	require.Len(t, hand.Warnings(), 1)
	require.Equal(t, filepath.Join(dir, settings.FileName), hand.Warnings()[0].Path)
}

func TestOpenFailures(t *testing.T) {
	dir := writeExport(t, `{"handdata": {}}`, map[string]string{"0.json": rootNodeJSON})
	_, err := Open(dir)
	require.Error(t, err)

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, settings.FileName), settingsJSON)
	_, err = Open(dir)
	require.Error(t, err)
}

func TestOpenedNodesAreCached(t *testing.T) {
	dir := twoNodeExport(t)
	hand, err := Open(dir)
	require.NoError(t, err)
	rc := countReads(hand.Cache())

	for _, ref := range []Ref{IDRef(0), FileRef("1.json"), PathRef(filepath.Join(hand.NodeDir(), "0.json"))} {
		_, err := hand.Lookup(ref)
		require.NoError(t, err)
	}
	require.Empty(t, rc.reads)
}
