package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/probe"
)

func newTestFetcher(t *testing.T, root string, minBytes int64) *Fetcher {
	t.Helper()
	log, err := logger.New(filepath.Join(t.TempDir(), "test.log"), logger.LevelError, false)
	require.NoError(t, err)
	return New(probe.New(root, minBytes), NewJobs(), log)
}

// countingServer serves fixed file bodies and counts requests per path.
type countingServer struct {
	mu    sync.Mutex
	hits  map[string]int
	files map[string][]byte
	fail  map[string]bool
}

func newCountingServer(files map[string][]byte) *countingServer {
	return &countingServer{
		hits:  make(map[string]int),
		files: files,
		fail:  make(map[string]bool),
	}
}

func (s *countingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	failing := s.fail[r.URL.Path]
	body, ok := s.files[r.URL.Path]
	s.mu.Unlock()

	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write(body)
}

func (s *countingServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *countingServer) totalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

func (s *countingServer) setFail(path string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[path] = fail
}

func multiFileAsset(base string) domain.Asset {
	return domain.Asset{
		ID:            "stt-test",
		Family:        domain.FamilyMoonshine,
		DirectoryName: "stt-test",
		RequiredFiles: []string{"a.onnx", "b.onnx", "c.onnx", "tokenizer.json"},
		RemoteBase:    base,
	}
}

func TestAcquireMultiFile(t *testing.T) {
	backend := newCountingServer(map[string][]byte{
		"/a.onnx":         []byte("aaaa"),
		"/b.onnx":         []byte("bbbb"),
		"/c.onnx":         []byte("cccc"),
		"/tokenizer.json": []byte("{}"),
	})
	srv := httptest.NewServer(backend)
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1)
	asset := multiFileAsset(srv.URL)

	var progress []float64
	err := f.Acquire(context.Background(), asset, func(frac float64) {
		progress = append(progress, frac)
	})
	require.NoError(t, err)

	for _, rel := range asset.RequiredFiles {
		assert.FileExists(t, filepath.Join(root, "stt-test", rel))
	}

	job, ok := f.Jobs().Get(domain.FamilyMoonshine)
	require.True(t, ok)
	assert.Equal(t, domain.StatusSucceeded, job.Status)
	assert.Equal(t, 4, job.CompletedFiles)

	require.NotEmpty(t, progress)
	assert.Equal(t, 1.0, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1], "progress must be monotonic")
	}
}

func TestAcquireNestedManifestPath(t *testing.T) {
	backend := newCountingServer(map[string][]byte{
		"/onnx/encode.onnx": []byte("eeee"),
		"/onnx/decode.onnx": []byte("dddd"),
		"/tokenizer.json":   []byte("{}"),
	})
	srv := httptest.NewServer(backend)
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1)

	asset := domain.Asset{
		ID:            "stt-nested",
		Family:        domain.FamilyMoonshine,
		DirectoryName: "stt-nested",
		RequiredFiles: []string{"onnx/encode.onnx", "onnx/decode.onnx", "tokenizer.json"},
		RemoteBase:    srv.URL,
	}

	require.NoError(t, f.Acquire(context.Background(), asset, nil))

	assert.FileExists(t, filepath.Join(root, "stt-nested", "onnx", "encode.onnx"))
	assert.FileExists(t, filepath.Join(root, "stt-nested", "onnx", "decode.onnx"))
	assert.FileExists(t, filepath.Join(root, "stt-nested", "tokenizer.json"))
}

func TestAcquireSkipsPresentFiles(t *testing.T) {
	backend := newCountingServer(map[string][]byte{})
	srv := httptest.NewServer(backend)
	defer srv.Close()

	root := t.TempDir()
	asset := multiFileAsset(srv.URL)

	// Pre-place the whole manifest.
	for _, rel := range asset.RequiredFiles {
		dir := filepath.Join(root, "stt-test")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte("x"), 0644))
	}

	f := newTestFetcher(t, root, 1)
	require.NoError(t, f.Acquire(context.Background(), asset, nil))

	assert.Equal(t, 0, backend.totalHits(), "a fully-present asset must not hit the network")
}

func TestAcquireSingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Write([]byte("aaaa"))
	}))
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1)
	asset := multiFileAsset(srv.URL)

	done := make(chan error, 1)
	go func() {
		done <- f.Acquire(context.Background(), asset, nil)
	}()

	<-started

	// Second acquire for the same family is rejected, not queued.
	err := f.Acquire(context.Background(), asset, nil)
	assert.ErrorIs(t, err, domain.ErrDownloadInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestAcquireAbortsOnFirstFailure(t *testing.T) {
	backend := newCountingServer(map[string][]byte{
		"/a.onnx":         []byte("aaaa"),
		"/b.onnx":         []byte("bbbb"),
		"/c.onnx":         []byte("cccc"),
		"/tokenizer.json": []byte("{}"),
	})
	backend.setFail("/b.onnx", true)
	srv := httptest.NewServer(backend)
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1)
	asset := multiFileAsset(srv.URL)

	err := f.Acquire(context.Background(), asset, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.onnx", "error must identify the failing file")

	// First file stays; the rest were never attempted.
	assert.FileExists(t, filepath.Join(root, "stt-test", "a.onnx"))
	assert.NoFileExists(t, filepath.Join(root, "stt-test", "c.onnx"))
	assert.Equal(t, 0, backend.hitCount("/c.onnx"))

	job, ok := f.Jobs().Get(domain.FamilyMoonshine)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFailed, job.Status)

	// Retry resumes at the first missing file: a.onnx is not re-fetched.
	backend.setFail("/b.onnx", false)
	require.NoError(t, f.Acquire(context.Background(), asset, nil))

	assert.Equal(t, 1, backend.hitCount("/a.onnx"))
	assert.Equal(t, 2, backend.hitCount("/b.onnx"))
	assert.Equal(t, 1, backend.hitCount("/c.onnx"))
	for _, rel := range asset.RequiredFiles {
		assert.FileExists(t, filepath.Join(root, "stt-test", rel))
	}
}

func TestAcquireCancellation(t *testing.T) {
	started := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	}))
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1)
	asset := multiFileAsset(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.Acquire(ctx, asset, nil)
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Acquire did not return after cancellation")
	}

	job, ok := f.Jobs().Get(domain.FamilyMoonshine)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFailed, job.Status)
	assert.Equal(t, "cancelled by user", job.Error)
}

func TestAcquireRejectsTruncatedSingleFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	root := t.TempDir()
	f := newTestFetcher(t, root, 1024)

	asset := domain.Asset{
		ID:         "llm-test",
		Family:     domain.FamilyLLM,
		Filename:   "model.gguf",
		RemoteBase: srv.URL,
	}

	err := f.Acquire(context.Background(), asset, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")

	assert.NoFileExists(t, filepath.Join(root, "model.gguf"))
	assert.NoFileExists(t, filepath.Join(root, "model.gguf.part"))
}
