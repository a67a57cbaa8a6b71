package cmd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
)

func stubExit(t *testing.T, fn func(int)) {
	t.Helper()
	orig := exit
	exit = fn
	t.Cleanup(func() { exit = orig })
}

func TestExitOnErrorClosesStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SPPD_DATA_DIR", dir)
	t.Setenv("SPPD_STORE", "bolt")
	t.Setenv("SPPD_DB_PATH", "")

	var codes []int
	stubExit(t, func(code int) { codes = append(codes, code) })

	s := openSession()
	defer s.Close()
	dbPath := s.paths.GetDatabasePath()

	exitOnError(errors.New("disk full"), "failed to save")

	if diff := cmp.Diff([]int{1}, codes); diff != "" {
		t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
	}
	if len(openSessions) != 0 {
		t.Errorf("openSessions = %d, expected 0", len(openSessions))
	}

	// bbolt holds an exclusive file lock until the database is closed.
	db, err := storage.OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("store still locked after exit: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestExitOnErrorNilIsNoop(t *testing.T) {
	called := false
	stubExit(t, func(int) { called = true })

	exitOnError(nil, "unused")

	if called {
		t.Error("exitOnError(nil) exited")
	}
}
