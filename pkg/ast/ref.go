package ast

import "strings"

// Ref is one identifier use-site inside a function body.  A Ref with a
// single path segment is an unqualified name; more segments form a
// qualified path such as `crateresolve3::f`.
type Ref struct {
	// Path is the segments of the reference, length >= 1.
	Path []string
	// Pos is the source position of the use.
	Pos Pos
}

// NewRef creates a reference from path segments.
func NewRef(path ...string) *Ref {
	return &Ref{Path: path}
}

// Qualified reports whether the reference has more than one segment.
func (r *Ref) Qualified() bool {
	return len(r.Path) > 1
}

// Head returns the first path segment.
func (r *Ref) Head() string {
	return r.Path[0]
}

// String implements fmt.Stringer
func (r *Ref) String() string {
	return strings.Join(r.Path, "::")
}
