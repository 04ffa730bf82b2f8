package hrcsim

import (
	"strconv"
	"strings"
)

// NodeFileExt is the suffix of node files.
const NodeFileExt = ".json"

// RefKind says how a Ref addresses a node.
type RefKind uint8

const (
	_ RefKind = iota
	ByID
	ByPath
	ByFilename
)

var refKindStr = [...]string{
	"Invalid",
	"ByID",
	"ByPath",
	"ByFilename",
}

func (k RefKind) String() string {
	if int(k) >= len(refKindStr) {
		return "Invalid"
	}

	return refKindStr[k]
}

// Ref is a reference to a node: by id, by absolute path within the
// node directory, or by bare file name. All three forms of one node
// resolve to the same cached Node.
type Ref struct {
	Kind RefKind
	ID   int
	// Name is the path or file name for ByPath and ByFilename.
	Name string
}

func IDRef(id int) Ref {
	return Ref{Kind: ByID, ID: id}
}

func PathRef(path string) Ref {
	return Ref{Kind: ByPath, Name: path}
}

func FileRef(name string) Ref {
	return Ref{Kind: ByFilename, Name: name}
}

// String returns the reference as the caller gave it.
func (r Ref) String() string {
	if r.Kind == ByID {
		return strconv.Itoa(r.ID)
	}

	return r.Name
}

// nodeFileName returns the file name of the node with the given id.
func nodeFileName(id int) string {
	return strconv.Itoa(id) + NodeFileExt
}

// parseNodeFileName returns the id encoded in a node file name. Only the
// names produced by nodeFileName are accepted, so "007.json" is not node 7.
func parseNodeFileName(name string) (int, bool) {
	if !strings.HasSuffix(name, NodeFileExt) {
		return 0, false
	}

	id, err := strconv.Atoi(strings.TrimSuffix(name, NodeFileExt))
	if err != nil || id < 0 || nodeFileName(id) != name {
		return 0, false
	}

	return id, true
}
