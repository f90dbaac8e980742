// Package translate talks to the free web translation endpoint: it builds
// the query, attaches the verification token, decodes the elided array
// response and picks the translation, pronunciation and language guess out
// of it.
package translate

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/minios-linux/gtrans/grammar"
	"github.com/minios-linux/gtrans/gtoken"
)

// Translator issues translation and detection requests. It is safe for
// concurrent use; each Translator owns its own token secret.
type Translator struct {
	opts        Options
	client      *http.Client
	serviceURLs []string
	clientType  string
	tokens      *gtoken.Store
	cache       *lru.Cache[cacheKey, Translated]
}

type cacheKey struct {
	src, dest, text string
}

// New returns a Translator configured by opts.
func New(opts Options) *Translator {
	t := &Translator{
		opts:        opts,
		client:      opts.HTTPClient,
		serviceURLs: opts.effectiveServiceURLs(),
		clientType:  clientWebApp,
	}
	if t.client == nil {
		t.client = makeHTTPClient(opts.Proxy, opts.effectiveTimeout())
	}
	if strings.Contains(t.serviceURLs[0], "googleapis") {
		t.serviceURLs = []string{"translate.googleapis.com"}
		t.clientType = clientGtx
	}
	storeOpts := []gtoken.StoreOption{gtoken.WithLogger(t.opts.logError)}
	if !opts.InitialSecret.IsZero() {
		storeOpts = append(storeOpts, gtoken.WithInitialSecret(opts.InitialSecret))
	}
	t.tokens = gtoken.NewStore(gtoken.FetcherFunc(t.fetchPage), t.serviceURLs[0], storeOpts...)

	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, Translated](opts.CacheSize)
		if err != nil {
			t.opts.logError("translate: cache disabled: %v", err)
		} else {
			t.cache = cache
		}
	}
	return t
}

// ClientType returns "webapp" or "gtx".
func (t *Translator) ClientType() string {
	return t.clientType
}

// Tokens exposes the secret store, e.g. to pre-warm or inspect it.
func (t *Translator) Tokens() *gtoken.Store {
	return t.tokens
}

// ---------------------------------------------------------------------------
// Public API
// ---------------------------------------------------------------------------

// Translate translates text from src to dest. Use "auto" as src to let the
// service detect the source language.
func (t *Translator) Translate(ctx context.Context, text, dest, src string) (*Translated, error) {
	dest = normalizeLang(dest)
	src = normalizeLang(src)
	if src == "" {
		src = langAuto
	}
	if err := checkLang(src, true); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := checkLang(dest, false); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	key := cacheKey{src: src, dest: dest, text: text}
	if t.cache != nil {
		if hit, ok := t.cache.Get(key); ok {
			return &hit, nil
		}
	}

	tree, err := t.request(ctx, text, dest, src)
	if err != nil {
		return nil, err
	}

	translated := translatedText(tree)
	result := Translated{
		Src:           sourceLang(tree, src),
		Dest:          dest,
		Origin:        text,
		Text:          translated,
		Pronunciation: pronunciation(tree, text, translated, dest),
		ExtraData:     extraData(tree),
	}
	if t.cache != nil {
		t.cache.Add(key, result)
	}
	return &result, nil
}

// Detect guesses the language of text.
func (t *Translator) Detect(ctx context.Context, text string) (*Detected, error) {
	tree, err := t.request(ctx, text, "en", langAuto)
	if err != nil {
		return nil, err
	}
	return detection(tree), nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (t *Translator) pickServiceURL() string {
	if len(t.serviceURLs) == 1 {
		return t.serviceURLs[0]
	}
	return t.serviceURLs[rand.IntN(len(t.serviceURLs))]
}

// request performs one translation call and decodes the response.
func (t *Translator) request(ctx context.Context, text, dest, src string) (grammar.Tree, error) {
	token := gtxToken
	if t.clientType == clientWebApp {
		token = t.tokens.Token(ctx, text)
	}

	host := t.pickServiceURL()
	endpoint := translateURL(host, BuildParams(t.clientType, text, src, dest, token, nil))
	t.opts.log("GET %s%s (tk=%s)", baseURL(host), translatePath, token)

	status, body, err := t.get(ctx, endpoint)
	if err != nil {
		return grammar.Tree{}, err
	}
	if status != http.StatusOK {
		if t.opts.RaiseException {
			return grammar.Tree{}, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, status, host)
		}
		t.opts.logError("translate: status %d from %s, returning input unchanged", status, host)
		return echoTree(text), nil
	}

	tree, err := grammar.ParseBytes(body)
	if err != nil {
		return grammar.Tree{}, fmt.Errorf("decoding response from %s: %w", host, err)
	}
	if tree.Kind != grammar.KindList {
		tree = grammar.List(tree)
	}
	return tree, nil
}

// fetchPage downloads the landing page the token secret is scraped from.
func (t *Translator) fetchPage(ctx context.Context, host string) (string, error) {
	status, body, err := t.get(ctx, baseURL(host))
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("landing page returned status %d", status)
	}
	return string(body), nil
}

func (t *Translator) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.opts.effectiveUserAgent())

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to %s failed: %w", redact(rawURL), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// redact drops the query (which carries the text) from URLs in errors.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}
