package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gradletree/internal/config"
	"github.com/matzehuels/gradletree/pkg/cache"
	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/observability"
)

// testCLI returns a CLI whose config and cache live in temporary
// directories and whose status output is captured.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, env := range []string{config.EnvFormat, config.EnvCache, config.EnvRedisURL, config.EnvAddr, config.EnvGradle, config.EnvLenient} {
		t.Setenv(env, "")
	}
	captureUI(t)
	return New(io.Discard, LogInfo)
}

// writeConfig writes config.toml where config.DefaultPath looks for it.
func writeConfig(t *testing.T, body string) {
	t.Helper()
	path, err := config.DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, c *CLI, stdin string, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func fixturePath() string {
	return filepath.Join("testdata", "dependencies.txt")
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"browse", "cache", "completion", "config", "parse", "render", "run", "serve"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestNewCacheBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"no-cache flag", config.BackendFile, true, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
		{"none", config.BackendNone, false, func(c cache.Cache) bool { _, ok := c.(*cache.NullCache); return ok }},
		{"memory", config.BackendMemory, false, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{"file", config.BackendFile, false, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Cache.Backend = tt.backend
			c.Config.Cache.Dir = t.TempDir()

			got, err := c.newCache(context.Background(), tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer got.Close()
			if !tt.check(got) {
				t.Errorf("newCache() = %T", got)
			}
		})
	}
}

func TestNewCacheRedisBadURL(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Backend = config.BackendRedis
	c.Config.Cache.RedisURL = "http://not-redis"

	_, err := c.newCache(context.Background(), false)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("newCache() error = %v, want INVALID_CONFIG", err)
	}
}

func TestNewRunnerScopesKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Backend = config.BackendNone
	c.Config.Cache.KeyPrefix = "ci:"

	runner, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	key := runner.Keyer.TreeKey("abc", cache.TreeKeyOpts{})
	if !strings.HasPrefix(key, "ci:") {
		t.Errorf("TreeKey() = %q, want ci: prefix", key)
	}
}

func TestVerboseRegistersLogHooks(t *testing.T) {
	c := testCLI(t)
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	c.Logger = newLogger(&logs, LogDebug)
	if _, err := execute(t, c, "", "parse", fixturePath(), "--no-cache"); err != nil {
		t.Fatal(err)
	}

	if _, ok := observability.Parse().(*logHooks); !ok {
		t.Errorf("parse hooks = %T, want *logHooks", observability.Parse())
	}
	for _, want := range []string{"parse finished", "encode finished"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("debug log should contain %q", want)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	c := testCLI(t)
	writeConfig(t, "format = \"yaml\"\n[cache]\nbackend = \"memory\"\n")

	out, err := execute(t, c, "", "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`format = "yaml"`, `backend = "memory"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config output %q should contain %q", out, want)
		}
	}
}

func TestConfigCommandInvalidFile(t *testing.T) {
	c := testCLI(t)
	writeConfig(t, "format = \"xml\"\n")

	_, err := execute(t, c, "", "config")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCacheCommands(t *testing.T) {
	c := testCLI(t)

	dir, err := execute(t, c, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir = strings.TrimSpace(dir)
	if filepath.Base(dir) != appName {
		t.Errorf("cache path = %q, should end with %q", dir, appName)
	}

	if _, err := execute(t, c, "", "parse", fixturePath(), "-f", "json"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, dir); n != 2 {
		t.Fatalf("cache holds %d files after parse, want tree and artifact", n)
	}

	if _, err := execute(t, c, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("cache holds %d files after clear", n)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return n
}

func TestCompletionCommand(t *testing.T) {
	c := testCLI(t)
	out, err := execute(t, c, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gradletree") {
		t.Error("bash completion should mention the program name")
	}
}
