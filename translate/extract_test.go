package translate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minios-linux/gtrans/grammar"
)

func mustParse(t *testing.T, text string) grammar.Tree {
	t.Helper()
	tree, err := grammar.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return tree
}

func TestTranslatedTextJoinsSegments(t *testing.T) {
	tree := mustParse(t, `[[["Hallo. ","Hello. "],["Wie geht's?","How are you?"],[,,"hallo"]],,"en"]`)
	if got := translatedText(tree); got != "Hallo. Wie geht's?" {
		t.Fatalf("translatedText = %q", got)
	}
}

func TestPronunciation(t *testing.T) {
	cases := []struct {
		name       string
		payload    string
		origin     string
		translated string
		dest       string
		want       string
	}{
		{
			name:       "second to last slot",
			payload:    `[[["ありがとう","thanks"],[,,"Arigatō","thanks"]]]`,
			origin:     "thanks",
			translated: "ありがとう",
			dest:       "ja",
			want:       "Arigatō",
		},
		{
			name:       "null second to last falls back to slot 2",
			payload:    `[[["공화국","republique"],[,,"gonghwagug"]]]`,
			origin:     "republique",
			translated: "공화국",
			dest:       "ko",
			want:       "gonghwagug",
		},
		{
			name:       "missing row keeps origin",
			payload:    `[[["Hallo","Hello"]]]`,
			origin:     "Hello",
			translated: "Hallo",
			dest:       "de",
			want:       "Hello",
		},
		{
			name:       "excluded destination uses translation",
			payload:    `[[["bonjour","hello"]]]`,
			origin:     "hello",
			translated: "bonjour",
			dest:       "fr",
			want:       "bonjour",
		},
		{
			name:       "excluded destination keeps real romanization",
			payload:    `[[["hola","hi"],[,,"X","Y"]]]`,
			origin:     "hi",
			translated: "hola",
			dest:       "ca",
			want:       "X",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pronunciation(mustParse(t, tc.payload), tc.origin, tc.translated, tc.dest)
			if got != tc.want {
				t.Errorf("pronunciation = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSourceLang(t *testing.T) {
	if got := sourceLang(mustParse(t, `[[],null,"fr"]`), "auto"); got != "fr" {
		t.Errorf("sourceLang = %q, want fr", got)
	}
	if got := sourceLang(mustParse(t, `[[]]`), "auto"); got != "auto" {
		t.Errorf("sourceLang = %q, want fallback", got)
	}
}

func TestExtraDataNames(t *testing.T) {
	tree := mustParse(t, `[[["a","b"]],,"en",,,,0,[1],,,,,["d"]]`)
	got := extraData(tree)
	var names []string
	for _, name := range []string{"translation", "original-language", "confidence", "possible-mistakes", "definitions"} {
		if _, ok := got[name]; ok {
			names = append(names, name)
		}
	}
	want := []string{"translation", "original-language", "possible-mistakes", "definitions"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("extra data parts mismatch (-want +got):\n%s", diff)
	}
}

func TestEchoTree(t *testing.T) {
	tree := echoTree("keep me")
	if got := translatedText(tree); got != "keep me" {
		t.Errorf("translatedText(echo) = %q", got)
	}
	if got := sourceLang(tree, "auto"); got != "en" {
		t.Errorf("sourceLang(echo) = %q", got)
	}
}
