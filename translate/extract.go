package translate

import (
	"strings"

	"github.com/minios-linux/gtrans/grammar"
)

// responseParts names the top-level slots of a translation response.
var responseParts = map[int]string{
	0:  "translation",
	1:  "all-translations",
	2:  "original-language",
	5:  "possible-translations",
	6:  "confidence",
	7:  "possible-mistakes",
	8:  "language",
	11: "synonyms",
	12: "definitions",
	13: "examples",
	14: "see-also",
}

// translatedText joins the translated segments found at tree[0][i][0].
func translatedText(tree grammar.Tree) string {
	var b strings.Builder
	for _, seg := range tree.Index(0).Items {
		if s, ok := seg.Index(0).AsString(); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// extraData keeps the truthy named parts of the response.
func extraData(tree grammar.Tree) map[string]grammar.Tree {
	extra := make(map[string]grammar.Tree)
	for i, name := range responseParts {
		if part := tree.Index(i); part.Truthy() {
			extra[name] = part
		}
	}
	return extra
}

// sourceLang returns the language the service recognised, or fallback.
func sourceLang(tree grammar.Tree, fallback string) string {
	if s, ok := tree.Index(2).AsString(); ok && s != "" {
		return s
	}
	return fallback
}

// pronunciation reads the romanization from tree[0][1]: the second to last
// slot, or slot 2 when that one is null. The origin is kept when the row is
// missing.
func pronunciation(tree grammar.Tree, origin, translated, dest string) string {
	pron := origin
	row := tree.At(0, 1)
	if row.Len() >= 2 {
		cand := row.Index(-2)
		if cand.IsNull() {
			pron, _ = row.Index(2).AsString()
		} else if s, ok := cand.AsString(); ok {
			pron = s
		}
	}
	if excludes[dest] && pron == origin {
		pron = translated
	}
	return pron
}

// detection reads the language guess. Legacy responses carry
// [[langs], ..., [confidences], ...] at tree[8]; newer ones only have the
// code at tree[2] and the confidence at tree[6].
func detection(tree grammar.Tree) *Detected {
	d := &Detected{}
	ld := tree.Index(8)
	langs := ld.Index(0).Strings()
	if len(langs) == 0 {
		d.Lang, _ = tree.Index(2).AsString()
		d.Confidence, _ = tree.Index(6).AsNumber()
		if d.Lang != "" {
			d.Langs = []string{d.Lang}
			d.Confidences = []float64{d.Confidence}
		}
		return d
	}

	d.Langs = langs
	d.Lang = langs[0]
	for _, i := range []int{-2, -1} {
		if conf := numbers(ld.Index(i)); len(conf) > 0 {
			d.Confidences = conf
			d.Confidence = conf[0]
			break
		}
	}
	return d
}

// numbers flattens a number leaf or a list of number leaves.
func numbers(t grammar.Tree) []float64 {
	switch t.Kind {
	case grammar.KindNumber:
		return []float64{t.Num}
	case grammar.KindList:
		var out []float64
		for _, it := range t.Items {
			if f, ok := it.AsNumber(); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}

// echoTree is the stand-in response used when the service refuses a
// request and errors are not raised: the input comes back untranslated.
func echoTree(text string) grammar.Tree {
	return grammar.List(
		grammar.List(grammar.List(grammar.String(text), grammar.Null(), grammar.Null(), grammar.Number(0))),
		grammar.Null(),
		grammar.String("en"),
	)
}
