package receipts_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.trai.ch/deps/internal/adapters/receipts"
	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestStore_PutAndGet(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "receipts.json")

	store := receipts.NewStore(storePath, quietLogger(t))

	receipt := domain.Receipt{
		Package:     "pkg@latest",
		Success:     true,
		Fingerprint: "abc",
		Timestamp:   time.Now(),
	}

	if err := store.Put(receipt); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("pkg@latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Package != receipt.Package {
		t.Errorf("expected Package %q, got %q", receipt.Package, got.Package)
	}
	if !got.Success {
		t.Error("expected Success to be true")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := receipts.NewStore(filepath.Join(t.TempDir(), "receipts.json"), quietLogger(t))

	got, err := store.Get("unknown")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil receipt, got %+v", got)
	}
}

func TestStore_Persistence(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "nested", "receipts.json")

	store1 := receipts.NewStore(storePath, quietLogger(t))
	if err := store1.Put(domain.Receipt{Package: "b@latest", Error: "boom"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store1.Put(domain.Receipt{Package: "a@latest", Success: true}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store2 := receipts.NewStore(storePath, quietLogger(t))

	got, err := store2.Get("b@latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Error != "boom" {
		t.Fatalf("expected persisted receipt with error 'boom', got %+v", got)
	}

	all := store2.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(all))
	}
	if all[0].Package != "a@latest" || all[1].Package != "b@latest" {
		t.Errorf("expected receipts sorted by package, got %q, %q", all[0].Package, all[1].Package)
	}

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(storePath))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the receipt file, got %d entries", len(entries))
	}
}

func TestStore_OmitZero(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "receipts.json")

	store := receipts.NewStore(storePath, quietLogger(t))
	if err := store.Put(domain.Receipt{Package: "pkg"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, "fingerprint") {
		t.Error("JSON should not contain 'fingerprint' for zero value")
	}
	if strings.Contains(jsonStr, "timestamp") {
		t.Error("JSON should not contain 'timestamp' for zero value")
	}
	if !strings.Contains(jsonStr, `"success": false`) {
		t.Error("JSON should always contain 'success'")
	}
}

func TestStore_PutWithoutPackage(t *testing.T) {
	store := receipts.NewStore(filepath.Join(t.TempDir(), "receipts.json"), quietLogger(t))
	if err := store.Put(domain.Receipt{}); err == nil {
		t.Error("expected error for receipt without package")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "receipts.json")
	if err := os.WriteFile(storePath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	store := receipts.NewStore(storePath, log)

	got, err := store.Get("pkg@latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected empty store, got %+v", got)
	}

	//nolint:gosec // Test file with controlled path
	aside, err := os.ReadFile(receipts.CorruptPath(storePath))
	if err != nil {
		t.Fatalf("corrupt file not moved aside: %v", err)
	}
	if string(aside) != "{not json" {
		t.Errorf("unexpected moved content %q", aside)
	}

	if err := store.Put(domain.Receipt{Package: "pkg@latest", Success: true}); err != nil {
		t.Fatalf("Put after recovery failed: %v", err)
	}
	reopened := receipts.NewStore(storePath, log)
	if r, _ := reopened.Get("pkg@latest"); r == nil || !r.Success {
		t.Errorf("expected receipt after recovery, got %+v", r)
	}
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	return mocks.NewMockLogger(gomock.NewController(t))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(receipts.PathEnv, "/tmp/custom/receipts.json")

	path, err := receipts.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if path != "/tmp/custom/receipts.json" {
		t.Errorf("expected override path, got %q", path)
	}
}
