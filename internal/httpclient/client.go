package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	// DefaultTimeout allows ample time for model responses and media
	// downloads while still preventing indefinite hangs.
	DefaultTimeout = 10 * time.Minute
	// MaxResponseBytes caps JSON/API response bodies.
	MaxResponseBytes = 8 * 1024 * 1024
	// MaxMediaBytes caps downloaded video files. 720p vertical clips from
	// the video API stay well under this.
	MaxMediaBytes = 512 * 1024 * 1024

	MaxIdleConns          = 100
	MaxIdleConnsPerHost   = 20
	IdleConnTimeout       = 120 * time.Second
	TLSHandshakeTimeout   = 30 * time.Second
	ExpectContinueTimeout = 2 * time.Second
)

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once
	overrideClient    *http.Client
)

// NewClient returns a new http.Client with the specified timeout.
func NewClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          MaxIdleConns,
		MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ExpectContinueTimeout: ExpectContinueTimeout,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// GetDefaultClient returns a standardized http.Client for use across the application.
func GetDefaultClient() *http.Client {
	if overrideClient != nil {
		return overrideClient
	}
	defaultClientOnce.Do(func() {
		defaultClient = NewClient(DefaultTimeout)
	})
	return defaultClient
}

// SetDefaultClientForTesting overrides the singleton client for tests.
// It returns a restore function to reset the previous client.
func SetDefaultClientForTesting(client *http.Client) func() {
	prevOverride := overrideClient
	overrideClient = client
	return func() {
		overrideClient = prevOverride
	}
}

// DoAndRead performs an HTTP request, reads the entire response body,
// ensures the body is closed, and returns the body content and the response object.
func DoAndRead(client *http.Client, req *http.Request) ([]byte, *http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.ContentLength > MaxResponseBytes {
		return nil, resp, fmt.Errorf("response body too large (limit %d bytes)", MaxResponseBytes)
	}

	limited := &io.LimitedReader{R: resp.Body, N: MaxResponseBytes + 1}
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseBytes {
		return nil, resp, fmt.Errorf("response body too large (limit %d bytes)", MaxResponseBytes)
	}

	return body, resp, nil
}

// DownloadToFile performs an HTTP request and streams the body to path.
// The file is removed again when the download fails midway, so callers
// never see a truncated media file.
func DownloadToFile(client *http.Client, req *http.Request, path string) (int64, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if resp.ContentLength > MaxMediaBytes {
		return 0, fmt.Errorf("media too large (limit %d bytes)", MaxMediaBytes)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, fmt.Errorf("failed to create media file: %w", err)
	}

	limited := &io.LimitedReader{R: resp.Body, N: MaxMediaBytes + 1}
	n, err := io.Copy(f, limited)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n > MaxMediaBytes {
		err = fmt.Errorf("media too large (limit %d bytes)", MaxMediaBytes)
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return n, nil
}
