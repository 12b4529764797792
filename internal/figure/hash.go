package figure

import (
	"encoding/binary"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// versionMarker joins every content hash so that artifacts produced by a
// different release are regenerated even when nothing else changed. Bump on
// any change to script materialization or capture code.
const versionMarker = "plotweave/1"

// Hash computes the stable content hash of the rendering-relevant parts of
// the spec. Caption and WithSource are deliberately excluded: editing a
// caption must not force a re-render. Dependency files participate by
// content, never by path or mtime. The hash contains no machine-local state,
// so it is stable across restarts and across machines.
func (s *Spec) Hash() uint64 {
	d := xxhash.New()
	writeField(d, versionMarker)
	writeField(d, string(s.Toolkit))
	writeField(d, s.Script)
	writeField(d, string(s.Format))
	writeField(d, s.Directory)
	writeField(d, strconv.Itoa(s.DPI))

	for _, dep := range s.Dependencies {
		writeFieldBytes(d, dep.Content)
	}

	keys := make([]string, 0, len(s.ExtraAttrs))
	for key := range s.ExtraAttrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		writeField(d, key)
		writeField(d, s.ExtraAttrs[key])
	}

	return d.Sum64()
}

// FigurePath derives the output artifact path: directory, decimal hash,
// format extension. Existence of a file at this exact path is treated as a
// cache hit; no further integrity check is performed.
func (s *Spec) FigurePath() string {
	return filepath.Join(s.Directory, strconv.FormatUint(s.Hash(), 10)+"."+s.Format.Extension())
}

// SourcePath derives the path of the syntax-highlighted source page written
// next to the figure.
func (s *Spec) SourcePath() string {
	return filepath.Join(s.Directory, strconv.FormatUint(s.Hash(), 10)+".src.html")
}

// Fields are length-prefixed so adjacent values cannot alias under
// concatenation.
func writeField(d *xxhash.Digest, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(s)
}

func writeFieldBytes(d *xxhash.Digest, b []byte) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(b)))
	_, _ = d.Write(buf[:])
	_, _ = d.Write(b)
}
