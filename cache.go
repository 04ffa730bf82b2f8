package hrcsim

import (
	"expvar"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var (
	nodesLoaded = expvar.NewInt("hrcsim/nodes_loaded")
	cacheHits   = expvar.NewInt("hrcsim/cache_hits")
	cacheMisses = expvar.NewInt("hrcsim/cache_misses")
)

// NodeCache resolves node references to Nodes, reading and parsing each
// node file at most once. It is safe for concurrent use.
type NodeCache struct {
	dir      string
	readFile func(path string) ([]byte, error)

	mu sync.Mutex
	// nodes is keyed by canonical path.
	nodes map[string]*Node
	// loads collapses concurrent misses of one path into a single read.
	loads singleflight.Group
}

// NewNodeCache creates an empty cache for the node files in nodeDir.
func NewNodeCache(nodeDir string) (*NodeCache, error) {
	dir, err := filepath.Abs(nodeDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve node directory %s", nodeDir)
	}

	return &NodeCache{
		dir:      dir,
		readFile: os.ReadFile,
		nodes:    make(map[string]*Node),
	}, nil
}

// Dir returns the absolute node directory.
func (c *NodeCache) Dir() string {
	return c.dir
}

// Resolve returns the Node that ref refers to, loading it on first use.
// It fails with an *AddressingError if ref does not name an existing node
// file and with a *CorruptNodeError if the file cannot be parsed.
func (c *NodeCache) Resolve(ref Ref) (*Node, error) {
	path, err := c.canonicalize(ref)
	if err != nil {
		return nil, err
	}

	if n, ok := c.get(path); ok {
		cacheHits.Add(1)
		return n, nil
	}

	cacheMisses.Add(1)
	v, err, _ := c.loads.Do(path, func() (interface{}, error) {
		// A load of path may have finished between get and Do.
		if n, ok := c.get(path); ok {
			return n, nil
		}

		n, err := c.load(ref, path)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.nodes[path] = n
		c.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Node), nil
}

func (c *NodeCache) get(path string) (*Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[path]
	return n, ok
}

// canonicalize maps ref to the absolute path of its node file without
// touching storage.
func (c *NodeCache) canonicalize(ref Ref) (string, error) {
	badRef := &AddressingError{Reason: reasonBadReference, Ref: ref.String()}
	switch ref.Kind {
	case ByID:
		if ref.ID < 0 {
			return "", badRef
		}

		return filepath.Join(c.dir, nodeFileName(ref.ID)), nil
	case ByPath:
		if !filepath.IsAbs(ref.Name) || !strings.HasSuffix(ref.Name, NodeFileExt) {
			return "", badRef
		}

		path := filepath.Clean(ref.Name)
		if filepath.Dir(path) != c.dir {
			return "", badRef
		}

		return path, nil
	case ByFilename:
		name := ref.Name
		if name == "" || strings.ContainsRune(name, filepath.Separator) ||
			strings.ContainsRune(name, '/') || !strings.HasSuffix(name, NodeFileExt) {
			return "", badRef
		}

		return filepath.Join(c.dir, name), nil
	}

	return "", badRef
}

func (c *NodeCache) load(ref Ref, path string) (*Node, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, newNotFound(ref)
	}

	id, ok := parseNodeFileName(filepath.Base(path))
	if !ok {
		return nil, &AddressingError{Reason: reasonBadReference, Ref: ref.String()}
	}

	data, err := c.readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read node %s", path)
	}

	n, err := ParseNode(id, path, data)
	if err != nil {
		return nil, err
	}

	nodesLoaded.Add(1)
	glog.V(2).Infof("Loaded %v from %s (%d actions, %d hands)",
		n, path, n.NumActions(), len(n.hands))
	return n, nil
}

// Len returns the number of loaded nodes.
func (c *NodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

// Paths returns the canonical paths of all loaded nodes, sorted.
func (c *NodeCache) Paths() []string {
	c.mu.Lock()
	paths := make([]string, 0, len(c.nodes))
	for path := range c.nodes {
		paths = append(paths, path)
	}
	c.mu.Unlock()

	sort.Strings(paths)
	return paths
}
