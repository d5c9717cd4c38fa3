package httpclient

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewClientTimeout(t *testing.T) {
	c := NewClient(3 * time.Second)
	if c.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", c.Timeout)
	}
	if c.Transport == nil {
		t.Fatal("expected tuned transport")
	}
}

func TestSetDefaultClientForTesting(t *testing.T) {
	custom := NewClient(time.Second)
	restore := SetDefaultClientForTesting(custom)
	if GetDefaultClient() != custom {
		t.Fatal("override not in effect")
	}
	restore()
	if GetDefaultClient() == custom {
		t.Fatal("override not restored")
	}
}

func TestDoAndRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	body, resp, err := DoAndRead(srv.Client(), req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestDownloadToFile(t *testing.T) {
	payload := strings.Repeat("v", 4096)

	t.Run("writes_file", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "clip.mp4")
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		n, err := DownloadToFile(srv.Client(), req, path)
		if err != nil {
			t.Fatal(err)
		}
		if n != int64(len(payload)) {
			t.Fatalf("wrote %d bytes, want %d", n, len(payload))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != payload {
			t.Fatal("file content mismatch")
		}
	})

	t.Run("non_200_fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "clip.mp4")
		req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
		if _, err := DownloadToFile(srv.Client(), req, path); err == nil {
			t.Fatal("expected error for 403 response")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatal("partial file should not remain")
		}
	})
}
