package fingerprint

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestTransport_GoProfile(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	rt, err := Transport(ProfileGo, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr, ok := rt.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", rt)
	}
	// httptest.NewTLSServer uses self-signed certs.
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	client := &http.Client{Transport: tr}
	resp, err := client.Get(ts.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestTransport_BrowserProfilesConstruct(t *testing.T) {
	for _, p := range []Profile{ProfileChrome, ProfileFirefox, ProfileSafari, ProfileRandom} {
		t.Run(string(p), func(t *testing.T) {
			rt, err := Transport(p, nil)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", p, err)
			}
			tr, ok := rt.(*http.Transport)
			if !ok {
				t.Fatalf("expected *http.Transport, got %T", rt)
			}
			if tr.DialTLSContext == nil {
				t.Error("expected DialTLSContext to be set for browser profile")
			}
		})
	}
}

func TestTransport_ProxyFuncInstalled(t *testing.T) {
	proxyURL, _ := url.Parse("http://proxy:8080")
	rt, err := Transport(ProfileGo, func(*http.Request) (*url.URL, error) {
		return proxyURL, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr := rt.(*http.Transport)
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	got, err := tr.Proxy(req)
	if err != nil || got == nil || got.String() != proxyURL.String() {
		t.Errorf("expected proxy %s, got %v (err %v)", proxyURL, got, err)
	}
}

func TestTransport_UnknownProfile(t *testing.T) {
	if _, err := Transport(Profile("netscape"), nil); err == nil {
		t.Fatal("expected error for unknown profile, got nil")
	}
}
