package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minios-linux/gtrans/gtoken"
)

const republiquePayload = `[[["공화국","republique"],[,,"gonghwagug"]],,"fr",,,[["republique",1,[["공화국",1000,true,false],["공화국의",0,true,false]],[[0,10]],"republique",0,1]],0.94949496,,[["fr"],,[0.94949496]],,,[["명사",[[["communauté","démocratie"],""]],"république"]]]`

// fakeService mimics the landing page and the translate endpoint.
type fakeService struct {
	*httptest.Server

	secret   string
	pages    atomic.Int32
	requests atomic.Int32

	mu        sync.Mutex
	inFlight  int
	maxSeen   int
	lastQuery url.Values
}

func (fs *fakeService) maxInFlight() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.maxSeen
}

func (fs *fakeService) query() url.Values {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.lastQuery
}

func newFakeService(t *testing.T, respond func(q url.Values) (int, string)) *fakeService {
	t.Helper()
	fs := &fakeService{
		secret: fmt.Sprintf("%d.932609646", gtoken.HourBucket(time.Now())),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fs.pages.Add(1)
		fmt.Fprintf(w, "<script>c._c={tkk:'%s'}</script>", fs.secret)
	})
	mux.HandleFunc(translatePath, func(w http.ResponseWriter, r *http.Request) {
		fs.requests.Add(1)
		fs.mu.Lock()
		fs.inFlight++
		if fs.inFlight > fs.maxSeen {
			fs.maxSeen = fs.inFlight
		}
		fs.lastQuery = r.URL.Query()
		fs.mu.Unlock()
		defer func() {
			fs.mu.Lock()
			fs.inFlight--
			fs.mu.Unlock()
		}()

		status, body := respond(r.URL.Query())
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func newTestTranslator(fs *fakeService, mutate func(*Options)) *Translator {
	opts := Options{
		ServiceURLs: []string{fs.URL},
		HTTPClient:  fs.Client(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(opts)
}

func TestTranslate(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusOK, republiquePayload
	})
	tr := newTestTranslator(fs, nil)

	got, err := tr.Translate(context.Background(), "republique", "ko", "auto")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got.Text != "공화국" {
		t.Errorf("Text = %q, want 공화국", got.Text)
	}
	if got.Src != "fr" || got.Dest != "ko" || got.Origin != "republique" {
		t.Errorf("got %+v", got)
	}
	if got.Pronunciation != "gonghwagug" {
		t.Errorf("Pronunciation = %q, want gonghwagug", got.Pronunciation)
	}
	for _, part := range []string{"translation", "original-language", "possible-translations", "confidence", "language", "synonyms"} {
		if _, ok := got.ExtraData[part]; !ok {
			t.Errorf("ExtraData missing %q", part)
		}
	}
	if _, ok := got.ExtraData["all-translations"]; ok {
		t.Error("ExtraData should drop null parts")
	}

	seen := fs.query()
	if seen.Get("client") != clientWebApp || seen.Get("sl") != "auto" || seen.Get("tl") != "ko" || seen.Get("q") != "republique" {
		t.Errorf("unexpected query %v", seen)
	}
	if want := gtoken.Generate(fs.secret, "republique"); seen.Get("tk") != want {
		t.Errorf("tk = %q, want %q", seen.Get("tk"), want)
	}
	if fs.pages.Load() != 1 {
		t.Errorf("landing page fetched %d times, want 1", fs.pages.Load())
	}
}

func TestTranslateNormalizesAndValidatesLanguages(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusOK, `[[["x","y"]],null,"` + q.Get("sl") + `"]`
	})
	tr := newTestTranslator(fs, nil)
	ctx := context.Background()

	got, err := tr.Translate(ctx, "y", "KO", "En_US")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got.Dest != "ko" || got.Src != "en" {
		t.Fatalf("languages = %s -> %s, want en -> ko", got.Src, got.Dest)
	}

	cases := []struct{ dest, src string }{
		{dest: "xx!", src: "en"},
		{dest: "en", src: "not a language"},
		{dest: "auto", src: "en"},
		{dest: "", src: "en"},
	}
	for _, tc := range cases {
		_, err := tr.Translate(ctx, "hello", tc.dest, tc.src)
		if !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("Translate(dest=%q, src=%q) err = %v, want ErrInvalidLanguage", tc.dest, tc.src, err)
		}
	}
	if n := fs.requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1 (invalid languages must not hit the service)", n)
	}
}

func TestTranslateNon200(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusTooManyRequests, "slow down"
	})

	t.Run("raise", func(t *testing.T) {
		tr := newTestTranslator(fs, func(o *Options) { o.RaiseException = true })
		_, err := tr.Translate(context.Background(), "hello", "de", "en")
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
		}
	})

	t.Run("degrade", func(t *testing.T) {
		var logged int
		tr := newTestTranslator(fs, func(o *Options) {
			o.OnError = func(string, ...any) { logged++ }
		})
		got, err := tr.Translate(context.Background(), "hello", "de", "en")
		if err != nil {
			t.Fatalf("Translate error: %v", err)
		}
		if got.Text != "hello" {
			t.Fatalf("Text = %q, want input echoed", got.Text)
		}
		if logged == 0 {
			t.Fatal("degraded response was not logged")
		}
	})
}

func TestTranslateMalformedResponse(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusOK, `[,,"en",,,,0.96954316,,[["en"],,0.96954316]]]`
	})
	tr := newTestTranslator(fs, nil)
	if _, err := tr.Translate(context.Background(), "x", "de", "en"); err == nil {
		t.Fatal("expected a decoding error")
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		wantLang string
		wantConf float64
		wantN    int
	}{
		{
			name:     "legacy detection block",
			payload:  `[,,"en",,,,0.96954316,,[["en"],,[0.96954316]]]`,
			wantLang: "en",
			wantConf: 0.96954316,
			wantN:    1,
		},
		{
			name:     "detection block with trailing languages",
			payload:  `[[["Hello","안녕",null,null,10]],null,"ko",null,null,null,1,[],[["ko"],null,[1],["ko"]]]`,
			wantLang: "ko",
			wantConf: 1,
			wantN:    1,
		},
		{
			name:     "several candidates",
			payload:  `[[["x","y"]],null,"ja",null,null,null,0.6,null,[["ja","zh-CN"],null,[0.6,0.3],["ja","zh-CN"]]]`,
			wantLang: "ja",
			wantConf: 0.6,
			wantN:    2,
		},
		{
			name:     "no detection block",
			payload:  `[[["x","y"]],null,"de",null,null,null,0.8]`,
			wantLang: "de",
			wantConf: 0.8,
			wantN:    1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := newFakeService(t, func(q url.Values) (int, string) {
				if q.Get("sl") != "auto" || q.Get("tl") != "en" {
					return http.StatusBadRequest, ""
				}
				return http.StatusOK, tc.payload
			})
			tr := newTestTranslator(fs, func(o *Options) { o.RaiseException = true })
			got, err := tr.Detect(context.Background(), "text")
			if err != nil {
				t.Fatalf("Detect error: %v", err)
			}
			if got.Lang != tc.wantLang || got.Confidence != tc.wantConf || len(got.Langs) != tc.wantN {
				t.Fatalf("Detect = %+v", got)
			}
		})
	}
}

func TestTranslateBatch(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		time.Sleep(10 * time.Millisecond)
		return http.StatusOK, `[[["` + q.Get("q") + `!","` + q.Get("q") + `"]],null,"en"]`
	})
	var progress atomic.Int32
	tr := newTestTranslator(fs, func(o *Options) {
		o.MaxConcurrent = 2
		o.OnProgress = func(done, total int) { progress.Add(1) }
	})

	texts := []string{"a", "b", "c", "d", "e", "f"}
	got, err := tr.TranslateBatch(context.Background(), texts, "de", "en")
	if err != nil {
		t.Fatalf("TranslateBatch error: %v", err)
	}
	for i, text := range texts {
		if got[i].Text != text+"!" {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Text, text+"!")
		}
	}
	if n := fs.maxInFlight(); n > 2 {
		t.Errorf("max in-flight = %d, want <= 2", n)
	}
	if progress.Load() != int32(len(texts)) {
		t.Errorf("progress callbacks = %d, want %d", progress.Load(), len(texts))
	}
	if fs.pages.Load() != 1 {
		t.Errorf("landing page fetched %d times, want 1", fs.pages.Load())
	}
}

func TestDetectBatchStopsOnError(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		if q.Get("q") == "bad" {
			return http.StatusInternalServerError, ""
		}
		return http.StatusOK, `[[["x","y"]],null,"en"]`
	})
	tr := newTestTranslator(fs, func(o *Options) { o.RaiseException = true })

	_, err := tr.DetectBatch(context.Background(), []string{"ok", "bad", "ok"})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestTranslateCache(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusOK, republiquePayload
	})
	tr := newTestTranslator(fs, func(o *Options) { o.CacheSize = 8 })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := tr.Translate(ctx, "republique", "ko", "auto"); err != nil {
			t.Fatalf("Translate error: %v", err)
		}
	}
	if n := fs.requests.Load(); n != 1 {
		t.Fatalf("requests = %d, want 1 with cache", n)
	}
	if _, err := tr.Translate(ctx, "republique", "ja", "auto"); err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if n := fs.requests.Load(); n != 2 {
		t.Fatalf("requests = %d, want 2 for a new language pair", n)
	}
}

func TestInitialSecretSkipsLandingPage(t *testing.T) {
	fs := newFakeService(t, func(q url.Values) (int, string) {
		return http.StatusOK, republiquePayload
	})
	seed, err := gtoken.ParseSecret(fs.secret)
	if err != nil {
		t.Fatalf("ParseSecret: %v", err)
	}
	tr := newTestTranslator(fs, func(o *Options) { o.InitialSecret = seed })

	if _, err := tr.Translate(context.Background(), "republique", "ko", "auto"); err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if n := fs.pages.Load(); n != 0 {
		t.Fatalf("landing page fetched %d times, want 0", n)
	}
	if want := gtoken.Generate(fs.secret, "republique"); fs.query().Get("tk") != want {
		t.Fatalf("tk = %q, want %q", fs.query().Get("tk"), want)
	}
}

func TestClientTypeSelection(t *testing.T) {
	if got := New(Options{}).ClientType(); got != clientWebApp {
		t.Errorf("default client type = %q, want webapp", got)
	}
	tr := New(Options{ServiceURLs: []string{"translate.googleapis.com", "translate.google.de"}})
	if tr.ClientType() != clientGtx {
		t.Errorf("client type = %q, want gtx", tr.ClientType())
	}
	if len(tr.serviceURLs) != 1 || tr.serviceURLs[0] != "translate.googleapis.com" {
		t.Errorf("service urls = %v", tr.serviceURLs)
	}
}
