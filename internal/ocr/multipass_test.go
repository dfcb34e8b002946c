package ocr

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engineFunc adapts a function to the Engine interface for tests.
type engineFunc func(ctx context.Context, img image.Image, cfg PassConfig) (string, error)

func (f engineFunc) Recognize(ctx context.Context, img image.Image, cfg PassConfig) (string, error) {
	return f(ctx, img, cfg)
}

func testVariants(names ...string) []Variant {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	out := make([]Variant, 0, len(names))
	for _, n := range names {
		out = append(out, Variant{Name: n, Image: img})
	}
	return out
}

func TestMultiPassRunCollectsAllPasses(t *testing.T) {
	engine := engineFunc(func(_ context.Context, _ image.Image, cfg PassConfig) (string, error) {
		return "text from " + cfg.Name, nil
	})
	mp := NewMultiPass(engine, MultiPassConfig{MaxWorkers: 2})

	variants := testVariants("original", "enhanced")
	profiles := DefaultProfiles([]string{"eng"})

	candidates, err := mp.Run(context.Background(), variants, profiles, nil)
	require.NoError(t, err)
	require.Len(t, candidates, len(variants)*len(profiles))

	// Results come back in job order: variants outer, profiles inner.
	assert.Equal(t, "original/auto", candidates[0].PassConfig)
	assert.Equal(t, "original/single-block", candidates[1].PassConfig)
	assert.Equal(t, "enhanced/auto", candidates[len(profiles)].PassConfig)
	assert.Equal(t, "text from auto", candidates[0].RawText)
}

func TestMultiPassRunDropsFailedPasses(t *testing.T) {
	engine := engineFunc(func(_ context.Context, _ image.Image, cfg PassConfig) (string, error) {
		if cfg.Mode == SegSparseText {
			return "", errors.New("segfault in sparse mode")
		}
		return cfg.Name, nil
	})
	mp := NewMultiPass(engine, MultiPassConfig{MaxWorkers: 4})

	candidates, err := mp.Run(context.Background(), testVariants("original"), DefaultProfiles(nil), nil)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.NotEqual(t, "original/sparse-text", c.PassConfig)
	}
}

func TestMultiPassRunAllPassesFailed(t *testing.T) {
	engine := engineFunc(func(_ context.Context, _ image.Image, _ PassConfig) (string, error) {
		return "", errors.New("tesseract not installed")
	})
	mp := NewMultiPass(engine, MultiPassConfig{})

	_, err := mp.Run(context.Background(), testVariants("original"), DefaultProfiles(nil), nil)
	require.ErrorIs(t, err, ErrAllPassesFailed)
}

func TestMultiPassRunNoJobs(t *testing.T) {
	mp := NewMultiPass(engineFunc(func(context.Context, image.Image, PassConfig) (string, error) {
		return "", nil
	}), MultiPassConfig{})

	_, err := mp.Run(context.Background(), nil, DefaultProfiles(nil), nil)
	require.ErrorIs(t, err, ErrAllPassesFailed)

	_, err = mp.Run(context.Background(), testVariants("original"), nil, nil)
	require.ErrorIs(t, err, ErrAllPassesFailed)
}

func TestMultiPassRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := engineFunc(func(ctx context.Context, _ image.Image, _ PassConfig) (string, error) {
		return "", ctx.Err()
	})
	mp := NewMultiPass(engine, MultiPassConfig{MaxWorkers: 2})

	_, err := mp.Run(ctx, testVariants("original"), DefaultProfiles(nil), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMultiPassRunBoundsConcurrency(t *testing.T) {
	var current, peak int64
	var mu sync.Mutex

	engine := engineFunc(func(_ context.Context, _ image.Image, _ PassConfig) (string, error) {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return "ok", nil
	})
	mp := NewMultiPass(engine, MultiPassConfig{MaxWorkers: 2})

	_, err := mp.Run(context.Background(), testVariants("a", "b", "c"), DefaultProfiles(nil), nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(2))
}

func TestMultiPassRunReportsProgress(t *testing.T) {
	engine := engineFunc(func(context.Context, image.Image, PassConfig) (string, error) {
		return "ok", nil
	})
	mp := NewMultiPass(engine, MultiPassConfig{MaxWorkers: 1})

	var fractions []float64
	progress := func(_ string, f float64) { fractions = append(fractions, f) }

	_, err := mp.Run(context.Background(), testVariants("original"), DefaultProfiles(nil), progress)
	require.NoError(t, err)

	require.NotEmpty(t, fractions)
	assert.Equal(t, 0.0, fractions[0])
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
}

func TestBestCandidate(t *testing.T) {
	candidates := []Candidate{
		{PassConfig: "a", RawText: "short"},
		{PassConfig: "b", RawText: "a much longer recognition result"},
		{PassConfig: "c", RawText: "mid length text"},
	}
	assert.Equal(t, "b", BestCandidate(candidates).PassConfig)

	// Length is measured on trimmed text, so whitespace padding never wins.
	padded := []Candidate{
		{PassConfig: "padded", RawText: "   \n\n  ok  \n\n   "},
		{PassConfig: "dense", RawText: "dense"},
	}
	assert.Equal(t, "dense", BestCandidate(padded).PassConfig)

	// Ties keep the earlier pass.
	tied := []Candidate{
		{PassConfig: "first", RawText: "aaaa"},
		{PassConfig: "second", RawText: "bbbb"},
	}
	assert.Equal(t, "first", BestCandidate(tied).PassConfig)

	assert.Equal(t, Candidate{}, BestCandidate(nil))
}

func TestJoinCandidates(t *testing.T) {
	joined := JoinCandidates([]Candidate{
		{RawText: "line one"},
		{RawText: "line two"},
	})
	assert.Equal(t, "line one\nline two", joined)
	assert.Equal(t, "", JoinCandidates(nil))
}

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles([]string{"eng", "vie"})
	require.Len(t, profiles, 4)
	seen := map[SegMode]bool{}
	for _, p := range profiles {
		seen[p.Mode] = true
		assert.Equal(t, []string{"eng", "vie"}, p.Languages)
		assert.NotEmpty(t, p.Name)
	}
	assert.Len(t, seen, 4, "each profile uses a distinct segmentation mode")

	// Empty language set falls back to English.
	for _, p := range DefaultProfiles(nil) {
		assert.Equal(t, []string{"eng"}, p.Languages)
	}
}

func TestSegModeString(t *testing.T) {
	cases := []struct {
		mode SegMode
		want string
	}{
		{SegAuto, "auto"},
		{SegSingleBlock, "single-block"},
		{SegSingleLine, "single-line"},
		{SegSparseText, "sparse-text"},
		{SegMode(99), "auto"},
	}
	for _, c := range cases {
		if got := c.mode.String(); got != c.want {
			t.Fatalf("SegMode(%d).String() = %q, expected %q", c.mode, got, c.want)
		}
	}
}
