package bypass

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/ammarnisar/placescout/internal/scrape"
)

// Detector examines a fetched response to determine whether the request was
// blocked or challenged rather than served real content. A blocked search
// page otherwise looks like a page with zero results, so detection is what
// lets the pipeline fail loudly instead of exporting an empty file.
type Detector func(res *scrape.Response) (detected bool, source string)

// DefaultDetectors returns the standard list of block-page detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		detectGoogleSorry,
		detectGoogleConsent,
		detectCloudflare,
	}
}

// Analyze runs the response through all provided detectors, updating it in
// place. It returns true if any detection triggered.
func Analyze(res *scrape.Response, detectors []Detector) bool {
	if res == nil {
		return false
	}
	for _, d := range detectors {
		if detected, source := d(res); detected {
			res.Blocked = true
			res.BlockSource = source
			return true
		}
	}
	res.Blocked = false
	res.BlockSource = ""
	return false
}

func getHeader(headers http.Header, key string) string {
	if headers == nil {
		return ""
	}
	return headers.Get(key)
}

// detectGoogleSorry looks for Google's "unusual traffic" interstitial, which
// is served from /sorry/ with a captcha, usually as a 429 or a redirect.
func detectGoogleSorry(res *scrape.Response) (bool, string) {
	if res.StatusCode == http.StatusTooManyRequests {
		return true, "GoogleSorry"
	}

	if loc := getHeader(res.Headers, "Location"); strings.Contains(loc, "/sorry/") {
		return true, "GoogleSorry"
	}

	if bytes.Contains(res.Body, []byte("unusual traffic from your computer network")) ||
		bytes.Contains(res.Body, []byte("/sorry/index")) ||
		bytes.Contains(res.Body, []byte("g-recaptcha")) {
		return true, "GoogleSorry"
	}
	return false, ""
}

// detectGoogleConsent looks for the cookie-consent interstitial served to
// clients without a consent cookie in some regions.
func detectGoogleConsent(res *scrape.Response) (bool, string) {
	if loc := getHeader(res.Headers, "Location"); strings.Contains(loc, "consent.google.com") {
		return true, "GoogleConsent"
	}
	if bytes.Contains(res.Body, []byte("consent.google.com")) &&
		bytes.Contains(res.Body, []byte("Before you continue")) {
		return true, "GoogleConsent"
	}
	return false, ""
}

// detectCloudflare looks for common Cloudflare challenge/block signatures.
func detectCloudflare(res *scrape.Response) (bool, string) {
	if res.StatusCode == http.StatusForbidden || res.StatusCode == http.StatusServiceUnavailable {
		server := strings.ToLower(getHeader(res.Headers, "Server"))
		if strings.Contains(server, "cloudflare") {
			return true, "Cloudflare"
		}

		if bytes.Contains(res.Body, []byte("cf-browser-verification")) ||
			bytes.Contains(res.Body, []byte("cf-turnstile")) ||
			bytes.Contains(res.Body, []byte("Attention Required! | Cloudflare")) {
			return true, "Cloudflare"
		}
	}
	return false, ""
}
