// Package i18n translates the gtrans command's own messages.
//
// It wraps gotext with T() and N(). Catalogues are embedded in the binary
// and selected at startup by Init():
//
//	i18n.Init("")  // LANGUAGE, LC_ALL, LC_MESSAGES, LANG
//	logSuccess(i18n.N("Translated %d text", "Translated %d texts", n), n)
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the catalogues.
// Directory structure: locales/{lang}/LC_MESSAGES/gtrans.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "gtrans"

// po is the gotext locale object used for translations.
var po *gotext.Locale

// Init selects the catalogue for lang, or for the environment when lang is
// empty. Call it before building commands so help texts are translated.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T returns the translation of msgid, or msgid itself when the catalogue
// has none.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N picks the plural form for n using the catalogue's Plural-Forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage follows GNU gettext: LANGUAGE, LC_ALL, LC_MESSAGES, LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			// LANGUAGE is a colon-separated list
			val, _, _ = strings.Cut(val, ":")
		}
		// "ru_RU.UTF-8" -> "ru_RU"
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
