package survey

import (
	"strconv"
	"strings"
)

// ShortLinkPrefix prefijo de los enlaces cortos.
const ShortLinkPrefix = "enc-"

// LinkBuilder genera los enlaces públicos de una encuesta a partir de su ID.
type LinkBuilder struct {
	BaseURL string
}

// Build devuelve el enlace largo (<base>/enc-<id>) y el corto (enc-<id>).
func (l LinkBuilder) Build(id int64) (long, short string) {
	short = ShortLinkPrefix + strconv.FormatInt(id, 10)
	return strings.TrimRight(l.BaseURL, "/") + "/" + short, short
}
