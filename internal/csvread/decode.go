package csvread

import (
	"bytes"
	"io"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newTextReader strips a leading byte order mark (decoding UTF-16 input when
// the mark says so) and replaces invalid UTF-8 sequences with U+FFFD.
func newTextReader(raw []byte) io.Reader {
	decoder := transform.Chain(xunicode.BOMOverride(transform.Nop), xunicode.UTF8.NewDecoder())
	return transform.NewReader(bytes.NewReader(raw), decoder)
}
