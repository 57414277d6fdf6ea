package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deps/internal/adapters/receipts"
	"go.trai.ch/deps/internal/app"
	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports/mocks"
	"go.trai.ch/deps/internal/engine/bootstrap"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	installer *mocks.MockInstaller
	store     *mocks.MockReceiptStore
	logger    *mocks.MockLogger
	provider  ComponentProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		installer: mocks.NewMockInstaller(ctrl),
		store:     mocks.NewMockReceiptStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	application := app.New(f.loader, bootstrap.New(f.installer, f.store, nil, f.logger), f.logger)
	f.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: f.logger}, func() {}, nil
	}
	return f
}

func manifest(pkgs ...string) *domain.Manifest {
	m := &domain.Manifest{
		Source: "built-in",
		Toolchain: domain.Toolchain{
			Binary:    "go",
			Bootstrap: []string{"brew", "install", "go"},
			Install:   []string{"go", "install"},
		},
		OnFailure: domain.FailureContinue,
	}
	for _, p := range pkgs {
		m.Packages = append(m.Packages, domain.MustParsePackageRef(p))
	}
	return m
}

// TestRun_Success verifies that a clean install run exits 0.
func TestRun_Success(t *testing.T) {
	f := newFixture(t)
	m := manifest("pkg@latest")

	f.loader.EXPECT().Load("").Return(m, nil)
	f.installer.EXPECT().CheckPresence(gomock.Any(), gomock.Any(), "go").Return(true, nil)
	f.installer.EXPECT().InstallPackage(gomock.Any(), gomock.Any(), m.Packages[0]).Return(nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"--no-color"}, stdout, io.Discard, f.provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "installed  pkg@latest")
}

// TestRun_Version verifies the version command needs no manifest.
func TestRun_Version(t *testing.T) {
	f := newFixture(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, io.Discard, f.provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "deps version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_CleanupCalled verifies telemetry is flushed after the command runs.
func TestRun_CleanupCalled(t *testing.T) {
	f := newFixture(t)
	base := f.provider
	cleaned := false
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := base(ctx)
		return c, func() { cleaned = true }, err
	}

	exitCode := run(context.Background(), []string{"version"}, io.Discard, io.Discard, provider)
	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}

// TestRun_PackageFailure verifies a failed package exits 1 without a second error log.
func TestRun_PackageFailure(t *testing.T) {
	f := newFixture(t)
	m := manifest("a@latest", "b@latest")

	f.loader.EXPECT().Load("").Return(m, nil)
	f.installer.EXPECT().CheckPresence(gomock.Any(), gomock.Any(), "go").Return(true, nil)
	f.installer.EXPECT().InstallPackage(gomock.Any(), gomock.Any(), m.Packages[0]).Return(errors.New("exit status 1"))
	f.installer.EXPECT().InstallPackage(gomock.Any(), gomock.Any(), m.Packages[1]).Return(nil)
	f.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)
	f.logger.EXPECT().Error(gomock.Any()).Times(0)

	exitCode := run(context.Background(), []string{"install"}, io.Discard, io.Discard, f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_BootstrapFailure verifies a failed bootstrap is logged and exits 1.
func TestRun_BootstrapFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("").Return(manifest("a@latest"), nil)
	f.installer.EXPECT().CheckPresence(gomock.Any(), gomock.Any(), "go").Return(false, nil)
	f.installer.EXPECT().CheckPresence(gomock.Any(), gomock.Any(), "brew").Return(true, nil)
	f.installer.EXPECT().Bootstrap(gomock.Any(), gomock.Any()).Return(errors.New("exit status 1"))
	f.installer.EXPECT().InstallPackage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), nil, io.Discard, io.Discard, f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_LoadError verifies that an unreadable manifest exits 1.
func TestRun_LoadError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("nope.yaml").Return(nil, domain.ErrManifestNotFound)
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"-c", "nope.yaml"}, io.Discard, io.Discard, f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Canceled verifies that a canceled context stops before installing.
func TestRun_Canceled(t *testing.T) {
	f := newFixture(t)
	m := manifest("a@latest")

	ctx, cancel := context.WithCancel(context.Background())
	f.loader.EXPECT().Load("").Return(m, nil)
	f.installer.EXPECT().CheckPresence(gomock.Any(), gomock.Any(), "go").DoAndReturn(func(context.Context, domain.Toolchain, string) (bool, error) {
		cancel()
		return true, nil
	})
	f.installer.EXPECT().InstallPackage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(ctx, nil, io.Discard, io.Discard, f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_CorruptReceiptStore verifies a damaged receipt file does not stop the CLI.
func TestRun_CorruptReceiptStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	statePath := filepath.Join(dir, "receipts.json")
	require.NoError(t, os.WriteFile(statePath, []byte("{not json"), 0o600))
	t.Setenv(receipts.PathEnv, statePath)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"status", "--no-color"}, stdout, io.Discard, resolveComponents)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "toolchain go:")
	assert.FileExists(t, receipts.CorruptPath(statePath))
}
