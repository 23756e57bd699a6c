package catalogsource

import (
	"bytes"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Clean strips a leading UTF-8 byte order mark and replaces invalid UTF-8
// sequences with U+FFFD so the catalog always decodes as text.
func Clean(data []byte, src string) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		log.Warnf("%s has invalid UTF-8, replacing invalid bytes", src)
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}
	return data
}
