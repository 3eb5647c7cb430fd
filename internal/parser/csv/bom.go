package csv

import (
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newDecoder returns a transformer that turns the export's bytes into UTF-8.
//
// Every variant honors a leading byte-order mark: a UTF-8 BOM is dropped and
// a UTF-16 BOM switches decoding to UTF-16 regardless of the configured name.
func newDecoder(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1252", "cp1252", "latin1", "iso-8859-1":
		return unicode.BOMOverride(charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, errors.Errorf("unsupported encoding %q", name)
	}
}
