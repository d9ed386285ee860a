// Package preprocess implements the binary template language's lexical
// preprocessor: it expands #include directives into a single text stream,
// annotated with "#file NAME LINE" marker lines emitted at column 0 so
// later stages can report source locations across included files.
package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mna/bintmpl/lang/token"
)

// ErrorKind identifies the category of a PreprocessorError.
type ErrorKind int

const (
	// MissingInclude indicates that an #include directive names a file that
	// participates in an include cycle. An included file that cannot be read
	// is reported as IOError.
	MissingInclude ErrorKind = iota
	// IOError indicates a failure reading a template or included file.
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case MissingInclude:
		return "missing-include"
	case IOError:
		return "io-error"
	default:
		return "unknown"
	}
}

// Error is returned by Run when an #include directive cannot be resolved or
// a file cannot be read.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// FileReader abstracts reading a template file by path, so tests can
// substitute an in-memory file tree instead of the real filesystem.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// DiskReader is a FileReader that reads files from the real filesystem.
type DiskReader struct{}

func (DiskReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

var includeRe = regexp.MustCompile(`^#include\s+(?:"([^"]+)"|<([^>]+)>)\s*$`)

// mapping associates a run of consecutive output lines, starting at
// OutputLine, with the original file and line number of the first line in
// that run. Looking up any output line in the run computes its original
// line by adding the offset from OutputLine.
type mapping struct {
	OutputLine int
	File       string
	OrigLine   int
}

// LineTable maps every line of a preprocessed output stream back to the
// original file and line it came from, built once while the preprocessor
// runs and binary-searchable by output line number thereafter.
type LineTable struct {
	entries []mapping // sorted by OutputLine, ascending
}

func (lt *LineTable) add(outputLine int, file string, origLine int) {
	lt.entries = append(lt.entries, mapping{OutputLine: outputLine, File: file, OrigLine: origLine})
}

// Resolve returns the original file and line number corresponding to the
// given 1-based line number in the preprocessed output stream.
func (lt *LineTable) Resolve(outputLine int) (file string, origLine int) {
	i := sort.Search(len(lt.entries), func(i int) bool { return lt.entries[i].OutputLine > outputLine }) - 1
	if i < 0 {
		return "", 0
	}
	m := lt.entries[i]
	// m.OutputLine is the "#file" marker's own output line, one line before
	// m.OrigLine's content actually starts, so the offset from the marker is
	// one less than the raw output-line difference.
	return m.File, m.OrigLine + (outputLine - m.OutputLine) - 1
}

// Run reads root and recursively inlines its #include directives, using r
// to read root and every included file. It returns the concatenated
// output stream (with "#file NAME LINE" markers at column 0 wherever the
// source file changes) and the LineTable needed to resolve positions in
// that stream back to their original file and line.
func Run(root string, r FileReader) (string, *LineTable, error) {
	p := &processor{r: r}
	if err := p.processFile(root, nil); err != nil {
		return "", nil, err
	}
	return p.out.String(), &p.lt, nil
}

type processor struct {
	r          FileReader
	out        strings.Builder
	lt         LineTable
	outputLine int // next 1-based output line to be written
}

func (p *processor) emitMarker(file string, line int) {
	p.outputLine++
	p.lt.add(p.outputLine, file, line)
	fmt.Fprintf(&p.out, "#file %s %d\n", file, line)
}

func (p *processor) processFile(path string, stack []string) error {
	for _, s := range stack {
		if s == path {
			return &Error{Kind: MissingInclude, Pos: token.Position{Filename: path, Line: 1}, Msg: "circular #include of " + path}
		}
	}
	stack = append(stack, path)

	b, err := p.r.ReadFile(path)
	if err != nil {
		return &Error{Kind: IOError, Pos: token.Position{Filename: path, Line: 1}, Msg: err.Error()}
	}

	dir := filepath.Dir(path)
	lines := strings.Split(string(b), "\n")
	// strings.Split on a trailing newline yields a final empty element; that's
	// fine, it is emitted as an empty last line just like the source had it.

	p.emitMarker(path, 1)
	for i, line := range lines {
		lineNo := i + 1
		if m := includeRe.FindStringSubmatch(line); m != nil {
			incPath := m[1]
			if incPath == "" {
				incPath = m[2]
			}
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(dir, incPath)
			}
			if err := p.processFile(incPath, stack); err != nil {
				return err
			}
			p.emitMarker(path, lineNo+1)
			continue
		}
		p.outputLine++
		p.out.WriteString(line)
		p.out.WriteByte('\n')
	}
	return nil
}
