package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// langAuto asks the service to detect the source language.
const langAuto = "auto"

// excludes are destination languages for which the service echoes the
// input as pronunciation; the translation is used instead.
var excludes = map[string]bool{"en": true, "ca": true, "fr": true}

// normalizeLang lowercases a code and drops a "_REGION" suffix.
func normalizeLang(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code, _, _ = strings.Cut(code, "_")
	return code
}

// checkLang rejects codes that are not well-formed, known BCP 47 tags.
// "auto" is accepted only where allowAuto is set.
func checkLang(code string, allowAuto bool) error {
	if code == langAuto {
		if allowAuto {
			return nil
		}
		return fmt.Errorf("%w: %q is only valid as a source language", ErrInvalidLanguage, code)
	}
	if code == "" {
		return fmt.Errorf("%w: empty language code", ErrInvalidLanguage)
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	return nil
}
