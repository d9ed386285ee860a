package maincmd

import (
	"fmt"
	"io"

	"github.com/mna/bintmpl/lang/preprocess"
	"github.com/mna/bintmpl/lang/scanner"
	"github.com/mna/bintmpl/lang/token"
)

// preprocessFile runs the #include-inlining pass over path and returns the
// resulting stream content along with the line table needed to translate
// positions in that stream back to path's own files and lines.
func preprocessFile(path string) ([]byte, *preprocess.LineTable, error) {
	out, lt, err := preprocess.Run(path, preprocess.DiskReader{})
	if err != nil {
		return nil, nil, err
	}
	return []byte(out), lt, nil
}

// printErrors writes err to w, resolving any scanner.ErrorList entries'
// positions through lt back to the original #include'd file and line they
// came from, rather than the line number within the concatenated
// preprocessed stream that token.Position alone would report.
func printErrors(w io.Writer, lt *preprocess.LineTable, err error) {
	list, ok := err.(scanner.ErrorList)
	if !ok {
		if err != nil {
			fmt.Fprintln(w, err)
		}
		return
	}
	for _, e := range list {
		pos := resolvePos(lt, e.Pos)
		fmt.Fprintf(w, "%s: %s\n", pos, e.Msg)
	}
}

// resolvePos translates a position within the preprocessed stream back to
// its original #include'd file and line, falling back to pos unchanged if
// lt has no mapping for it (e.g. pos is the zero Position).
func resolvePos(lt *preprocess.LineTable, pos token.Position) token.Position {
	if lt == nil || !pos.IsValid() {
		return pos
	}
	file, line := lt.Resolve(pos.Line)
	if file == "" {
		return pos
	}
	return token.Position{Filename: file, Line: line, Column: pos.Column, Offset: pos.Offset}
}
