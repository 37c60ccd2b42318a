package browser

import (
	"math/rand"
	"net/http"
)

const (
	// AcceptDocument is the Accept value a browser sends for a top-level page
	AcceptDocument = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	// AcceptFeed prefers RSS and Atom but takes html too
	AcceptFeed = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"
)

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

// Headers returns browser-like request headers with some randomization.
// Accept-Encoding and Connection are left to the transport.
func Headers(accept string) map[string]string {
	res := map[string]string{
		"Accept":                    accept,
		"Accept-Language":           acceptLanguages[rand.Intn(len(acceptLanguages))], //nolint:gosec // non-cryptographic randomness is fine for header variation
		"Cache-Control":             "max-age=0",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Ch-Ua-Mobile":          "?0",
	}
	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		res["DNT"] = "1"
	}
	return res
}

// SetHeaders adds browser-like headers to the request
func SetHeaders(req *http.Request, accept string) {
	for k, v := range Headers(accept) {
		req.Header.Set(k, v)
	}
}
