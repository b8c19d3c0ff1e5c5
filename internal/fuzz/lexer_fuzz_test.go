package fuzztests

import (
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/lexer"
	"github.com/jsrustad/stylefix/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// FuzzLexerLossless checks that the token stream carries every input byte:
// concatenating leading trivia, token text, and trailing trivia over the
// whole stream must reproduce the input exactly.
func FuzzLexerLossless(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampFuzzInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.cs", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		tokens := lexer.Tokenize(file, diag.BagReporter{Bag: bag})

		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Leading.Text())
			sb.WriteString(tok.Text)
			sb.WriteString(tok.Trailing.Text())
		}
		if got := sb.String(); got != string(input) {
			t.Fatalf("token stream is lossy:\ninput (%d bytes): %q\ngot   (%d bytes): %q",
				len(input), truncateForLog(input, 200), sb.Len(), truncateForLog([]byte(got), 200))
		}
	})
}

func clampFuzzInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
