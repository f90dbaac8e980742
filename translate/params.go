package translate

import (
	"net/url"
	"strings"
)

const (
	clientWebApp = "webapp"
	clientGtx    = "gtx"

	// gtxToken is sent in place of a real token by the gtx client, which
	// does not check it.
	gtxToken = "xxxx"

	translatePath = "/translate_a/single"
)

// dataTypes selects the response parts: alternate translations, dictionary,
// examples, language detection, definitions, spelling, romanization, related
// words, synonyms and the translation itself.
var dataTypes = []string{"at", "bd", "ex", "ld", "md", "qca", "rw", "rm", "ss", "t"}

// BuildParams returns the query of a translation request. Keys present in
// override replace the defaults.
func BuildParams(client, query, src, dest, token string, override url.Values) url.Values {
	params := url.Values{
		"client": {client},
		"sl":     {src},
		"tl":     {dest},
		"hl":     {dest},
		"dt":     append([]string(nil), dataTypes...),
		"ie":     {"UTF-8"},
		"oe":     {"UTF-8"},
		"otf":    {"1"},
		"ssel":   {"0"},
		"tsel":   {"0"},
		"tk":     {token},
		"q":      {query},
	}
	for key, values := range override {
		params[key] = append([]string(nil), values...)
	}
	return params
}

// baseURL turns a bare host into an https URL; URLs with a scheme are kept.
func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// translateURL is the endpoint for host with params encoded.
func translateURL(host string, params url.Values) string {
	return baseURL(host) + translatePath + "?" + params.Encode()
}
