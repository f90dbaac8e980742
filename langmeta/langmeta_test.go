package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "zh_tw", want: "zh-TW"},
		{in: " ZH-cn ", want: "zh-CN"},
		{in: "ko", want: "ko"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		got := Resolve("ko")
		if got.Name != "한국어" || got.English != "Korean" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("normalized match", func(t *testing.T) {
		got := Resolve("zh_tw")
		if got.Name != "繁體中文" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("service alias", func(t *testing.T) {
		if Resolve("iw").English != "Hebrew" || Resolve("jw").English != "Javanese" {
			t.Fatal("legacy service codes are not resolved")
		}
	})

	t.Run("base fallback", func(t *testing.T) {
		got := Resolve("fr-CA")
		if got.Name != "Français" {
			t.Fatalf("unexpected fallback result: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("xx-YY")
		if got.Name != "xx-YY" || got.English != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"de":    "Deutsch, German",
		"en":    "English",
		"xx":    "xx",
		"pt_BR": "Português, Portuguese",
	}
	for code, want := range cases {
		if got := Label(code); got != want {
			t.Errorf("Label(%q) = %q, want %q", code, got, want)
		}
	}
}
