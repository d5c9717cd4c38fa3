package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	t.Run("creates_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.srt")
		if err := AtomicWrite(path, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "hello" {
			t.Fatalf("unexpected content: %q", data)
		}
	})

	t.Run("replaces_existing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.srt")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := AtomicWrite(path, []byte("new"), 0o644); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Fatalf("unexpected content: %q", data)
		}
	})

	t.Run("refuses_symlinked_destination", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlink not permitted on Windows")
		}
		dir := t.TempDir()
		target := filepath.Join(dir, "target.mp4")
		if err := os.WriteFile(target, []byte("original"), 0o600); err != nil {
			t.Fatal(err)
		}
		link := filepath.Join(dir, "out.mp4")
		if err := os.Symlink(target, link); err != nil {
			t.Fatal(err)
		}

		if err := AtomicWrite(link, []byte("replacement"), 0o644); err == nil {
			t.Fatal("expected symlinked destination to be refused")
		}
		data, _ := os.ReadFile(target)
		if string(data) != "original" {
			t.Fatalf("target was overwritten: %q", data)
		}
	})

	t.Run("leaves_no_temp_files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.mp4")
		if err := AtomicWrite(path, []byte("bytes"), 0o600); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected only the destination file, got %d entries", len(entries))
		}
	})
}

func TestCopyAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dst := filepath.Join(dir, "dst.mp4")
	if err := os.WriteFile(src, []byte("media"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := CopyAtomic(src, dst, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "media" {
		t.Fatalf("unexpected content: %q", data)
	}
}
