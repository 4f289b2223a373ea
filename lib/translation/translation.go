package translation

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Configure points gotext at the locale directory for the given language.
// Unknown or undetermined codes fall back to English.
func Configure(localesDir, lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == "und" {
		lang = "en"
	}
	gotext.Configure(localesDir, lang, "default")
}

func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
