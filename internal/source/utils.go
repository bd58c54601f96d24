package source

import (
	"path/filepath"
	"slices"
	"sort"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r bytes alone.
// Returns the new slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// buildLineIndex records the byte offset of every '\n' in the file (0-based).
// The first line starts at byte 0; the start of line k > 1 is LineIdx[k-2] + 1.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
    if len(lineIdx) == 0 {
        return LineCol{Line: 1, Col: off + 1}
    }
    i := sort.Search(len(lineIdx), func(k int) bool { return lineIdx[k] > off })
    if i == 0 {
        return LineCol{Line: 1, Col: off + 1}
    }
    last := lineIdx[i-1]
    if off == last {
        var start uint32
        if i-1 == 0 { start = 0 } else { start = lineIdx[i-2] + 1 }
        return LineCol{Line: uint32(i), Col: last - start + 1}
    }
    start := last + 1
    return LineCol{Line: uint32(i + 1), Col: off - start + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the absolute path to the file.
// If the path is already absolute, it is returned normalized.
func AbsolutePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	return normalizePath(absPath), nil
}

// RelativePath returns a path relative to the base directory.
// Falls back to the absolute path if a relative path cannot be computed.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return normalizePath(absPath), nil
	}

	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}

	return normalizePath(relPath), nil
}

// BaseName returns just the file name, without directories.
// The result is normalized for consistency, though a basename rarely has slashes.
func BaseName(path string) string {
	return normalizePath(filepath.Base(path))
}
