package source

// buildLineSpans splits content into physical lines. A line terminator is
// "\r\n", a lone "\n", or a lone "\r"; the exact bytes are preserved so the
// terminator of any line can be reported verbatim.
func buildLineSpans(content []byte) []LineSpan {
	lines := make([]LineSpan, 0, 16)
	start := uint32(0)
	i := 0
	for i < len(content) {
		b := content[i]
		if b != '\n' && b != '\r' {
			i++
			continue
		}
		termStart := uint32(i)
		if b == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			i += 2
		} else {
			i++
		}
		lines = append(lines, LineSpan{Start: start, TermStart: termStart, End: uint32(i)})
		start = uint32(i)
	}
	if int(start) < len(content) || len(lines) == 0 {
		end := uint32(len(content))
		lines = append(lines, LineSpan{Start: start, TermStart: end, End: end})
	}
	return lines
}

// LineCount returns the number of physical lines in the file.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// LineAt returns the 1-based line number containing the byte offset.
// Offsets at or past the end of content map to the last line.
func (f *File) LineAt(off uint32) uint32 {
	lo, hi := 0, len(f.Lines)-1
	for lo < hi {
		mid := (lo + hi) >> 1
		if f.Lines[mid].End <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return uint32(lo + 1)
}

// LineText returns the text of the 1-based line without its terminator.
// Out-of-range lines yield an empty string.
func (f *File) LineText(line uint32) string {
	if line == 0 || int(line) > len(f.Lines) {
		return ""
	}
	ls := f.Lines[line-1]
	return string(f.Content[ls.Start:ls.TermStart])
}

// LineTerminator returns the exact terminator bytes of the 1-based line,
// or an empty string if the line has none (last line at end of file).
func (f *File) LineTerminator(line uint32) string {
	if line == 0 || int(line) > len(f.Lines) {
		return ""
	}
	ls := f.Lines[line-1]
	return string(f.Content[ls.TermStart:ls.End])
}

func toLineCol(lines []LineSpan, off uint32) LineCol {
	lo, hi := 0, len(lines)-1
	for lo < hi {
		mid := (lo + hi) >> 1
		if lines[mid].End <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return LineCol{Line: uint32(lo + 1), Col: off - lines[lo].Start + 1}
}
