package translate

import (
	"fmt"
	"strings"

	"github.com/minios-linux/gtrans/grammar"
)

// Translated is the result of a translation.
type Translated struct {
	// Src is the source language, as detected by the service when "auto"
	// was requested.
	Src string
	// Dest is the destination language.
	Dest string
	// Origin is the input text.
	Origin string
	// Text is the translated text.
	Text string
	// Pronunciation is the romanization, when the service provides one.
	Pronunciation string
	// ExtraData holds the non-empty optional response parts by name
	// ("all-translations", "synonyms", "definitions", ...).
	ExtraData map[string]grammar.Tree
}

func (t *Translated) String() string {
	return fmt.Sprintf("Translated(src=%s, dest=%s, text=%s, pronunciation=%s, extra_data=%d parts)",
		t.Src, t.Dest, t.Text, t.Pronunciation, len(t.ExtraData))
}

// Detected is the result of a language detection.
type Detected struct {
	// Lang is the most likely language.
	Lang string
	// Langs lists every candidate the service returned, best first.
	Langs []string
	// Confidence is the confidence of Lang, from 0 to 1.
	Confidence float64
	// Confidences is parallel to Langs when the service returned several.
	Confidences []float64
}

func (d *Detected) String() string {
	if len(d.Langs) > 1 {
		return fmt.Sprintf("Detected(lang=[%s], confidence=%v)", strings.Join(d.Langs, ", "), d.Confidences)
	}
	return fmt.Sprintf("Detected(lang=%s, confidence=%v)", d.Lang, d.Confidence)
}
