package logger_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/deps/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done

	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestLogger_Info(t *testing.T) {
	output, err := captureStderr(func() {
		// Created inside the capture so it binds to the redirected stderr.
		lg := logger.New()
		lg.Info("some message")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INF") {
		t.Errorf("Expected output to contain 'INF', got: %s", output)
	}
}

func TestLogger_Error_Metadata(t *testing.T) {
	missing := zerr.With(zerr.New("package manager not found"), "package_manager", "brew")
	installErr := zerr.With(errors.New("exit status 1"), "exit_code", 1)

	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Error(errors.Join(zerr.With(missing, "toolchain", "go"), installErr))
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	for _, want := range []string{"package manager not found", "package_manager=brew", "toolchain=go", "exit_code=1"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_Error(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Error(os.ErrPermission)
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERR") {
		t.Errorf("Expected output to contain 'ERR', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Warn("some warning")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "some warning") {
		t.Errorf("Expected output to contain 'some warning', got: %s", output)
	}
	if !strings.Contains(output, "WRN") {
		t.Errorf("Expected output to contain 'WRN', got: %s", output)
	}
}

func TestLogger_DebugLevel(t *testing.T) {
	t.Run("hidden by default", func(t *testing.T) {
		t.Setenv(logger.DebugEnv, "")
		var buf bytes.Buffer
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(&buf)
		lg.Debug("quiet")
		if strings.Contains(buf.String(), "quiet") {
			t.Errorf("Expected debug message to be filtered, got: %s", buf.String())
		}
	})

	t.Run("enabled by env", func(t *testing.T) {
		t.Setenv(logger.DebugEnv, "1")
		var buf bytes.Buffer
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(&buf)
		lg.Debug("loud")
		if !strings.Contains(buf.String(), "loud") {
			t.Errorf("Expected debug message, got: %s", buf.String())
		}
	})
}

func TestLogger_SetOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(&buf)
	lg.Info("redirected")

	if !strings.Contains(buf.String(), "redirected") {
		t.Errorf("Expected buffer to contain 'redirected', got: %s", buf.String())
	}
}
