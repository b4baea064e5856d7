package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit")
	}
	if err := c.Set(ctx, "k", []byte("svg"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "svg" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete hit")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("x"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("cache dir missing after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if n := len(Hash(nil)); n != 64 {
		t.Errorf("Hash length = %d, want 64", n)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	canvas := layout.DefaultCanvas()
	sel := 3

	s1 := k.SceneKey("ds", SceneKeyOpts{Canvas: canvas})
	s2 := k.SceneKey("ds", SceneKeyOpts{Canvas: canvas, Selected: &sel})
	if s1 == s2 {
		t.Error("selection should change the scene key")
	}
	if !strings.HasPrefix(s1, "scene:") {
		t.Errorf("SceneKey = %s", s1)
	}
	if s1 != k.SceneKey("ds", SceneKeyOpts{Canvas: canvas}) {
		t.Error("SceneKey not deterministic")
	}

	a1 := k.ArtifactKey("ds", ArtifactKeyOpts{SceneKeyOpts: SceneKeyOpts{Canvas: canvas}, Format: "svg", Style: "simple"})
	a2 := k.ArtifactKey("ds", ArtifactKeyOpts{SceneKeyOpts: SceneKeyOpts{Canvas: canvas}, Format: "png", Style: "simple"})
	a3 := k.ArtifactKey("other", ArtifactKeyOpts{SceneKeyOpts: SceneKeyOpts{Canvas: canvas}, Format: "svg", Style: "simple"})
	if a1 == a2 || a1 == a3 {
		t.Error("format and dataset should change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "v1:")
	key := scoped.ArtifactKey("ds", ArtifactKeyOpts{Format: "svg"})
	if want := "v1:" + NewDefaultKeyer().ArtifactKey("ds", ArtifactKeyOpts{Format: "svg"}); key != want {
		t.Errorf("ArtifactKey = %s, want %s", key, want)
	}
	if !strings.HasPrefix(scoped.SceneKey("ds", SceneKeyOpts{}), "v1:scene:") {
		t.Error("SceneKey not prefixed")
	}
}

func TestBackoffRun(t *testing.T) {
	quick := backoff{attempts: 3, first: time.Millisecond}
	plain := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, plain, 1, plain},
		{"recovers", 1, transient(plain), 2, nil},
		{"gives up", 5, transient(plain), 3, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := quick.run(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := backoff{attempts: 5, first: time.Hour}.run(ctx, func() error {
		calls++
		return transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should be nil")
	}
	err := transient(ErrUnavailable)
	if !isTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Error("transient should wrap and unwrap")
	}
	if isTransient(ErrUnavailable) {
		t.Error("plain error reported transient")
	}
}

func TestRedisCacheUnavailable(t *testing.T) {
	defer func(b backoff) { redisBackoff = b }(redisBackoff)
	redisBackoff.first = time.Millisecond

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache() error = %v, want ErrUnavailable", err)
	}
}

// TestRedisCache runs against a live server when RISKFLOW_TEST_REDIS is set
// to its address.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("RISKFLOW_TEST_REDIS")
	if addr == "" {
		t.Skip("RISKFLOW_TEST_REDIS not set")
	}
	ctx := context.Background()
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: addr}), "riskflow-test:")
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("svg"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "svg" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}
