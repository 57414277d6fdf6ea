package toolchain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deps/internal/adapters/toolchain"
	"go.trai.ch/deps/internal/core/domain"
	"go.trai.ch/deps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func goToolchain() domain.Toolchain {
	return domain.Toolchain{
		Binary:    "go",
		Bootstrap: []string{"brew", "install", "go"},
		Install:   []string{"go", "install"},
		Env:       map[string]string{"GOBIN": "/opt/bin"},
	}
}

func TestInstaller_CheckPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go"), []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test script

	installer := toolchain.NewInstaller(
		mocks.NewMockExecutor(ctrl),
		toolchain.WithEnviron(func() []string { return []string{"PATH=" + dir} }),
	)

	present, err := installer.CheckPresence(context.Background(), goToolchain(), "go")
	require.NoError(t, err)
	assert.True(t, present)

	present, err = installer.CheckPresence(context.Background(), goToolchain(), "brew")
	require.NoError(t, err)
	assert.False(t, present)

	present, err = installer.CheckPresence(context.Background(), goToolchain(), "")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestInstaller_CheckPresence_ToolchainPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brew"), []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test script

	installer := toolchain.NewInstaller(
		mocks.NewMockExecutor(ctrl),
		toolchain.WithEnviron(func() []string { return []string{"PATH=" + t.TempDir()} }),
	)

	tc := goToolchain()
	present, err := installer.CheckPresence(context.Background(), tc, "brew")
	require.NoError(t, err)
	assert.False(t, present)

	tc.Env = map[string]string{"PATH": dir}
	present, err = installer.CheckPresence(context.Background(), tc, "brew")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestInstaller_CheckPresence_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	installer := toolchain.NewInstaller(mocks.NewMockExecutor(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := installer.CheckPresence(ctx, goToolchain(), "go")
	require.ErrorIs(t, err, context.Canceled)
}

func TestInstaller_Bootstrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockExecutor.EXPECT().Execute(gomock.Any(), domain.Command{
		Args: []string{"brew", "install", "go"},
		Env:  map[string]string{"GOBIN": "/opt/bin"},
	}).Return(nil).Times(1)

	installer := toolchain.NewInstaller(mockExecutor)
	require.NoError(t, installer.Bootstrap(context.Background(), goToolchain()))
}

func TestInstaller_Bootstrap_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errors.New("exit status 1"))

	installer := toolchain.NewInstaller(mockExecutor)
	err := installer.Bootstrap(context.Background(), goToolchain())
	require.ErrorIs(t, err, domain.ErrBootstrapFailed)
	assert.ErrorContains(t, err, "exit status 1")
}

func TestInstaller_Bootstrap_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	installer := toolchain.NewInstaller(mocks.NewMockExecutor(ctrl))
	err := installer.Bootstrap(context.Background(), domain.Toolchain{Binary: "go"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBootstrapFailed.Error())
}

func TestInstaller_InstallPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockExecutor.EXPECT().Execute(gomock.Any(), domain.Command{
		Args: []string{"go", "install", "pkg@latest"},
		Env:  map[string]string{"GOBIN": "/opt/bin"},
	}).Return(nil).Times(1)

	installer := toolchain.NewInstaller(mockExecutor)
	err := installer.InstallPackage(context.Background(), goToolchain(), domain.MustParsePackageRef("pkg@latest"))
	require.NoError(t, err)
}

func TestInstaller_InstallPackage_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errors.New("module not found"))

	installer := toolchain.NewInstaller(mockExecutor)
	err := installer.InstallPackage(context.Background(), goToolchain(), domain.MustParsePackageRef("pkg@latest"))
	require.ErrorIs(t, err, domain.ErrPackageInstallFailed)
	assert.ErrorContains(t, err, "module not found")
}

func TestInstaller_InstallPackage_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	installer := toolchain.NewInstaller(mocks.NewMockExecutor(ctrl))
	err := installer.InstallPackage(context.Background(), domain.Toolchain{}, domain.MustParsePackageRef("pkg@latest"))
	require.Error(t, err)
}
