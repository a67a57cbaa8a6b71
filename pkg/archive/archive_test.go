package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shunichi-ikebuchi/sppd/pkg/pathutil"
)

func newTestArchive(t *testing.T) (*FileSystemArchive, string) {
	t.Helper()
	root := t.TempDir()
	return NewFileSystemArchive(pathutil.New(pathutil.Config{DataDir: root})), filepath.Join(root, "arsip")
}

func TestSaveAndRead(t *testing.T) {
	a, root := newTestArchive(t)

	path, err := a.Save("2024-03-15", "sppd_001.pdf", []byte("%PDF-1.3"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if expected := filepath.Join(root, "2024", "03", "sppd_001.pdf"); path != expected {
		t.Errorf("Save() path = %q, expected %q", path, expected)
	}

	// Saving again replaces the file.
	if _, err := a.Save("2024-03-15", "sppd_001.pdf", []byte("%PDF-1.4")); err != nil {
		t.Fatalf("Save() again error = %v", err)
	}

	data, err := a.Read("2024-03-20", "sppd_001.pdf")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("Read() = %q", data)
	}
	if !a.Exists("2024-03-01", "sppd_001.pdf") {
		t.Error("Exists() = false")
	}
	if a.Exists("2024-04-01", "sppd_001.pdf") {
		t.Error("Exists() in other month = true")
	}
}

func TestSaveRejectsInvalidInput(t *testing.T) {
	a, _ := newTestArchive(t)

	if _, err := a.Save("15-03-2024", "x.pdf", nil); err == nil {
		t.Error("Save() with bad date error = nil")
	}
	if _, err := a.Save("2024-03-15", "../x.pdf", nil); err == nil {
		t.Error("Save() with path in name error = nil")
	}
}

func TestList(t *testing.T) {
	a, root := newTestArchive(t)

	got, err := a.List("2024-03")
	if err != nil {
		t.Fatalf("List() on empty archive error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() on empty archive = %v", got)
	}

	for _, name := range []string{"kuitansi_KW-1.pdf", "sppd_backup_2024-03-15.json", "lumpsum_id_1.pdf"} {
		if _, err := a.Save("2024-03-15", name, []byte("x")); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "2024", "03", ".hidden"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	got, err = a.List("2024-03")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	expected := []string{"kuitansi_KW-1.pdf", "lumpsum_id_1.pdf", "sppd_backup_2024-03-15.json"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("List() mismatch (-expected +got):\n%s", diff)
	}

	if _, err := a.List("2024"); err == nil {
		t.Error("List() with bad month error = nil")
	}
}
