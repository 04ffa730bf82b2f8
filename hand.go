package hrcsim

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/hrcsim/settings"
)

// NodesDirName is the directory of node files within an export.
const NodesDirName = "nodes"

// Hand is an opened hand export. Every node file found at Open is loaded
// eagerly; nodes reached later through Lookup share the same cache.
type Hand struct {
	dir      string
	settings *settings.Settings
	cache    *NodeCache
	// nodes holds one Node per node file found at Open, sorted by id.
	nodes    []*Node
	warnings []DiscoveryWarning
}

// Open loads the hand exported to exportDir.
//
// Directory entries that are not node files, and node files that cannot
// be loaded, are skipped and reported by Warnings. A malformed settings
// file or an unreadable node directory is an error.
func Open(exportDir string) (*Hand, error) {
	dir, err := filepath.Abs(exportDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve export directory %s", exportDir)
	}

	h := &Hand{dir: dir}
	if err := h.loadSettings(); err != nil {
		return nil, err
	}

	h.cache, err = NewNodeCache(filepath.Join(dir, NodesDirName))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(h.cache.Dir())
	if err != nil {
		return nil, errors.Wrap(err, "list node directory")
	}

	glog.V(1).Infof("Loading %d entries from %s", len(entries), h.cache.Dir())
	for _, entry := range entries {
		path := filepath.Join(h.cache.Dir(), entry.Name())
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), NodeFileExt) {
			h.warn(DiscoveryWarning{Path: path, Reason: "unrecognized file in node directory"})
			continue
		}

		n, err := h.cache.Resolve(FileRef(entry.Name()))
		if err != nil {
			h.warn(DiscoveryWarning{Path: path, Reason: "skipping node", Err: err})
			continue
		}

		h.nodes = append(h.nodes, n)
	}

	sort.Slice(h.nodes, func(i, j int) bool {
		return h.nodes[i].ID() < h.nodes[j].ID()
	})

	glog.V(1).Infof("Loaded %d nodes from %s (%d skipped entries)",
		len(h.nodes), dir, len(h.warnings))
	return h, nil
}

func (h *Hand) loadSettings() error {
	path := filepath.Join(h.dir, settings.FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.warn(DiscoveryWarning{Path: path, Reason: "no settings file"})
		return nil
	}

	s, err := settings.Load(path)
	if err != nil {
		return err
	}

	h.settings = s
	return nil
}

func (h *Hand) warn(w DiscoveryWarning) {
	glog.Warningf("Warning: %v", w)
	h.warnings = append(h.warnings, w)
}

// Lookup returns the node that ref refers to.
func (h *Hand) Lookup(ref Ref) (*Node, error) {
	return h.cache.Resolve(ref)
}

// Node returns the node with the given id.
func (h *Hand) Node(id int) (*Node, error) {
	return h.cache.Resolve(IDRef(id))
}

// Root returns node 0, where play starts.
func (h *Hand) Root() (*Node, error) {
	return h.Node(0)
}

// Step takes the i'th action of n. ok is false if the action ends the
// hand, in which case there is no next node.
func (h *Hand) Step(n *Node, i int) (next *Node, ok bool, err error) {
	ref, ok, err := n.TakeAction(i)
	if err != nil || !ok {
		return nil, false, err
	}

	next, err = h.Lookup(ref)
	if err != nil {
		return nil, false, errors.Wrapf(err, "%v action %d", n, i)
	}

	return next, true, nil
}

// Nodes returns the nodes loaded at Open, sorted by id.
func (h *Hand) Nodes() []*Node {
	return append([]*Node(nil), h.nodes...)
}

// Warnings returns the entries skipped at Open.
func (h *Hand) Warnings() []DiscoveryWarning {
	return append([]DiscoveryWarning(nil), h.warnings...)
}

// Settings returns the hand's settings, or nil if the export has none.
func (h *Hand) Settings() *settings.Settings {
	return h.settings
}

// Dir returns the absolute export directory.
func (h *Hand) Dir() string {
	return h.dir
}

func (h *Hand) NodeDir() string {
	return h.cache.Dir()
}

// Cache returns the hand's node cache.
func (h *Hand) Cache() *NodeCache {
	return h.cache
}
