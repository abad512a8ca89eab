package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadAllToleratesFailures(t *testing.T) {
	fetch := FetchFunc(func(ctx context.Context, ref string) (image.Image, error) {
		if ref == "bad.png" {
			return nil, errors.New("404")
		}
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	})

	set := LoadAll(context.Background(), fetch, []string{"good.png", "bad.png"}, zerolog.Nop())

	if set.Loaded() != 1 || set.Failed() != 1 {
		t.Fatalf("expected 1 loaded and 1 failed, got %d/%d", set.Loaded(), set.Failed())
	}
	if _, ok := set.Get("good.png"); !ok {
		t.Error("good.png should be loaded")
	}
	if _, ok := set.Get("bad.png"); ok {
		t.Error("bad.png should not be loaded")
	}
	if set.Err("bad.png") == nil {
		t.Error("failure should be recorded")
	}
}

func TestLoadAllSkipsEmpty(t *testing.T) {
	calls := 0
	fetch := FetchFunc(func(ctx context.Context, ref string) (image.Image, error) {
		calls++
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})

	set := LoadAll(context.Background(), fetch, []string{"", ""}, zerolog.Nop())
	if calls != 0 || set.Loaded() != 0 {
		t.Errorf("empty refs should not be fetched, calls=%d", calls)
	}
}

func TestDirFetcher(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "earth.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := DirFetcher{Root: dir}
	set := LoadAll(context.Background(), fetcher, []string{"earth.png", "broken.png", "missing.webp"}, zerolog.Nop())

	if set.Loaded() != 1 {
		t.Errorf("expected 1 loaded, got %d", set.Loaded())
	}
	if set.Failed() != 2 {
		t.Errorf("expected 2 failed, got %d", set.Failed())
	}
	got, ok := set.Get("earth.png")
	if !ok || got.Bounds().Dx() != 4 {
		t.Error("earth.png not decoded")
	}
}
