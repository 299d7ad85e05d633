package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gterrors "github.com/matzehuels/gradletree/pkg/errors"
)

func TestNullCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	keyer := NewDefaultKeyer()
	tree := keyer.TreeKey(Hash([]byte("compileClasspath - C.\n+--- a:a:1\n")), TreeKeyOpts{})
	for _, key := range []string{tree, keyer.ArtifactKey(tree, ArtifactKeyOpts{Format: "json"})} {
		if err := c.Set(ctx, key, []byte(`{"label":"Project Dependencies"}`), TTLTree); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
		data, hit, err := c.Get(ctx, key)
		if err != nil || hit || data != nil {
			t.Errorf("Get(%q) = %q, %v, %v; want a plain miss", key, data, hit, err)
		}
		if err := c.Delete(ctx, key); err != nil {
			t.Errorf("Delete(%q): %v", key, err)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	report := Hash([]byte("runtime - R.\n+--- a:a:1\n"))

	tk1 := k.TreeKey(report, TreeKeyOpts{})
	tk2 := k.TreeKey(report, TreeKeyOpts{Lenient: true})
	if tk1 == tk2 {
		t.Error("Lenient should change the tree key")
	}

	a := k.TreeKey(report, TreeKeyOpts{Configurations: []string{"b", "a", "a"}})
	b := k.TreeKey(report, TreeKeyOpts{Configurations: []string{"a", "b"}})
	if a != b {
		t.Error("configuration order and duplicates must not change the tree key")
	}
	if a == tk1 {
		t.Error("configuration filter should change the tree key")
	}

	ak1 := k.ArtifactKey(tk1, ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey(tk1, ArtifactKeyOpts{Format: "png"})
	ak3 := k.ArtifactKey(tk1, ArtifactKeyOpts{Format: "svg", Flat: true})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if len(tk1) != len("tree:")+64 {
		t.Errorf("TreeKey unexpected: %s", tk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "staging:")
	plain := NewDefaultKeyer()

	got := scoped.TreeKey("abc", TreeKeyOpts{})
	if got != "staging:"+plain.TreeKey("abc", TreeKeyOpts{}) {
		t.Errorf("ScopedKeyer TreeKey unexpected: %s", got)
	}
	got = scoped.ArtifactKey("tree:1", ArtifactKeyOpts{Format: "dot"})
	if got != "staging:"+plain.ArtifactKey("tree:1", ArtifactKeyOpts{Format: "dot"}) {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.TreeKey("abc", TreeKeyOpts{}); got[:7] != "prefix:" {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "tree:1"); hit || err != nil {
		t.Fatalf("empty cache Get = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "tree:1", []byte("payload"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "tree:1")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "tree:1"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "tree:1"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "tree:1"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}

	if err := c.Set(ctx, "bad", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry Get = %v, %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left in cache dir", len(entries))
	}

	missing := &FileCache{dir: filepath.Join(t.TempDir(), "nope")}
	if n, err := missing.Clear(); n != 0 || err != nil {
		t.Errorf("Clear on missing dir = %d, %v", n, err)
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_, _, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("b should have been evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("a was used recently and should remain")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(0)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	data := []byte("tree")
	_ = c.Set(ctx, "k", data, time.Minute)
	data[0] = 'X'

	got, hit, _ := c.Get(ctx, "k")
	if !hit || string(got) != "tree" {
		t.Errorf("Get = %q, %v; Set must copy its input", got, hit)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if c.Len() != 0 {
		t.Error("expired entry not removed")
	}
}

type failingCache struct{ *NullCache }

var errDown = errors.New("backend down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDown }

func TestLayeredCacheBackfills(t *testing.T) {
	ctx := context.Background()
	front, _ := NewMemoryCache(8)
	back, _ := NewMemoryCache(8)
	c := NewLayeredCache(front, back)

	_ = back.Set(ctx, "k", []byte("v"), 0)
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if _, hit, _ := front.Get(ctx, "k"); !hit {
		t.Error("hit in back layer was not copied to front layer")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := back.Get(ctx, "k"); hit {
		t.Error("Delete did not reach back layer")
	}
}

func TestLayeredCacheSkipsFailingLayer(t *testing.T) {
	ctx := context.Background()
	mem, _ := NewMemoryCache(8)
	_ = mem.Set(ctx, "k", []byte("v"), 0)

	c := NewLayeredCache(failingCache{NewNullCache()}, mem)
	if _, hit, err := c.Get(ctx, "k"); !hit || err != nil {
		t.Errorf("Get = %v, %v; failing layer must be skipped", hit, err)
	}
	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("miss = %v, %v", hit, err)
	}

	all := NewLayeredCache(failingCache{NewNullCache()})
	if _, _, err := all.Get(ctx, "k"); !errors.Is(err, errDown) {
		t.Errorf("all layers failing: err = %v", err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, "not a url"); !gterrors.Is(err, gterrors.ErrCodeInvalidConfig) {
		t.Errorf("bad url: err = %v", err)
	}
	if _, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0"); !gterrors.Is(err, gterrors.ErrCodeCache) {
		t.Errorf("unreachable server: err = %v", err)
	}
}
