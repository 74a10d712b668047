package token

import "fmt"

// File identifies a single source file being scanned/parsed/analysed. Unlike
// the teacher's multi-file FileSet, ilex's CLI compiles exactly one source
// file per run (spec.md's "interpreter <source-file>"), so Pos alone (which
// already packs line and column) is sufficient to locate an error within it;
// File only carries the name for diagnostics.
type File struct {
	Name string
}

// NewFile returns a new File for the given source name.
func NewFile(name string) *File { return &File{Name: name} }

// Position is the human-readable counterpart of a Pos, resolved against a
// File.
type Position struct {
	Filename string
	Line     int
	Col      int
}

func (p Position) String() string {
	if p.Line == 0 {
		return p.Filename
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// PosMode configures how a Position is rendered by FormatPos.
type PosMode int

const (
	// PosShort renders only the line number, as "[line N]", matching
	// spec.md's mandated CLI error format.
	PosShort PosMode = iota
	// PosLong renders "filename:line:col".
	PosLong
)

// FormatPos renders pos (resolved against file) according to mode.
func FormatPos(mode PosMode, file *File, pos Pos) string {
	line, col := pos.LineCol()
	switch mode {
	case PosLong:
		name := ""
		if file != nil {
			name = file.Name
		}
		return Position{Filename: name, Line: line, Col: col}.String()
	default:
		return fmt.Sprintf("[line %d]", line)
	}
}
