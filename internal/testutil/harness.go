// Package testutil provides a harness for end-to-end tests that run a full
// App against scripts and datasets written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/dvcheck/internal/app"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/report"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Summary   report.Summary
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a temporary directory and runs an App
// with that directory as its script path. cfg may be nil; its ScriptPath is
// always replaced and a relative DataPath is resolved against the directory.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	appConfig := app.Config{
		ReportFormat: "text",
		LogLevel:     "debug",
		LogFormat:    "text",
		WorkerCount:  4,
	}
	if cfg != nil {
		appConfig = *cfg
	}
	appConfig.ScriptPath = dir
	if appConfig.DataPath != "" && !filepath.IsAbs(appConfig.DataPath) {
		appConfig.DataPath = filepath.Join(dir, appConfig.DataPath)
	}

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: dir}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(out, logBuffer, &appConfig, modules...)
	}()

	if result.Err == nil {
		result.Summary, result.Err = result.App.Run(ctx)
	}

	if os.Getenv("DVCHECK_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Output = out.String()
	result.LogOutput = logBuffer.String()
	return result
}
