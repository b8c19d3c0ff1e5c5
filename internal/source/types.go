package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM indicates the content starts with a UTF-8 byte order mark.
	// The mark is kept in Content so byte offsets stay true to disk.
	FileHasBOM
)

// File captures metadata and content for a single source file. Content is
// the exact byte sequence read from disk: line endings and BOM are never
// rewritten, because the fix engine must reproduce them verbatim.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Lines   []LineSpan
	Hash    [32]byte
	Flags   FileFlags
}

// LineSpan describes one physical line: its text occupies
// [Start, TermStart) and its terminator, if any, [TermStart, End).
// The last line of a file without a trailing newline has TermStart == End.
type LineSpan struct {
	Start     uint32
	TermStart uint32
	End       uint32
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
