package translate

import (
	"net/http"
	"net/url"
	"time"

	"github.com/minios-linux/gtrans/gtoken"
)

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

const (
	// DefaultServiceURL is the web app host used when none is configured.
	DefaultServiceURL = "translate.google.com"
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultTimeout       = 10 * time.Second
	defaultMaxConcurrent = 2
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options controls the translator behavior.
type Options struct {
	// ServiceURLs are the hosts to spread requests over, picked at random.
	// A host containing "googleapis" switches to the token-less gtx client.
	ServiceURLs []string
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// Proxy is an optional HTTP/HTTPS proxy URL. HTTP_PROXY and friends are
	// honoured when empty.
	Proxy string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// RaiseException makes non-200 responses an error instead of degrading
	// to an echo of the input.
	RaiseException bool
	// MaxConcurrent bounds the batch operations. Default: 2.
	MaxConcurrent int
	// RequestDelay spaces out the start of batch requests.
	RequestDelay time.Duration
	// CacheSize enables an LRU cache of that many translations (0 = off).
	CacheSize int
	// InitialSecret seeds the token store, e.g. with a secret saved by an
	// earlier run in the same hour.
	InitialSecret gtoken.Secret
	// HTTPClient replaces the client built from Proxy and Timeout.
	HTTPClient *http.Client
	// OnProgress is called after each item of a batch completes.
	OnProgress func(done, total int)
	// OnLog emits log messages.
	OnLog func(format string, args ...any)
	// OnError emits error messages.
	OnError func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaultTimeout
}

func (o *Options) effectiveMaxConcurrent() int {
	if o.MaxConcurrent > 0 {
		return o.MaxConcurrent
	}
	return defaultMaxConcurrent
}

func (o *Options) effectiveUserAgent() string {
	if o.UserAgent != "" {
		return o.UserAgent
	}
	return DefaultUserAgent
}

func (o *Options) effectiveServiceURLs() []string {
	if len(o.ServiceURLs) > 0 {
		return o.ServiceURLs
	}
	return []string{DefaultServiceURL}
}

// ---------------------------------------------------------------------------
// HTTP client with real proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
