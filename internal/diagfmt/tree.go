package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Tree dumps a parsed file as an indented outline, one line per node or
// token. Meant for debugging the parser and the fixers, not for users.
func Tree(w io.Writer, tree *syntax.Tree, fs *source.FileSet) {
	writeNode(w, tree, fs, tree.Root(), 0)
}

func writeNode(w io.Writer, tree *syntax.Tree, fs *source.FileSet, id syntax.NodeID, depth int) {
	indent := strings.Repeat("  ", depth)
	start, end := fs.Resolve(tree.Span(id))
	fmt.Fprintf(w, "%s%s %d:%d-%d:%d\n",
		indent, tree.Kind(id), start.Line, start.Col, end.Line, end.Col)
	for _, ch := range tree.Children(id) {
		if ch.Node.IsValid() {
			writeNode(w, tree, fs, ch.Node, depth+1)
			continue
		}
		writeToken(w, tree, ch.Token, depth+1)
	}
}

func writeToken(w io.Writer, tree *syntax.Tree, id syntax.TokenID, depth int) {
	tok := tree.Token(id)
	indent := strings.Repeat("  ", depth)
	if tok.Span.Empty() {
		fmt.Fprintf(w, "%s%s <missing>\n", indent, tok.Kind)
		return
	}
	fmt.Fprintf(w, "%s%s %q\n", indent, tok.Kind, tok.Text)
}
