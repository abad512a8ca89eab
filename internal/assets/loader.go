package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// maxConcurrent bounds the number of decodes in flight.
const maxConcurrent = 8

type Fetcher interface {
	Fetch(ctx context.Context, ref string) (image.Image, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(ctx context.Context, ref string) (image.Image, error)

func (f FetchFunc) Fetch(ctx context.Context, ref string) (image.Image, error) { return f(ctx, ref) }

// DirFetcher decodes PNG, JPEG and WebP textures from a directory.
type DirFetcher struct {
	Root string
}

func (d DirFetcher) Fetch(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(d.Root, filepath.FromSlash(ref)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// Set is the outcome of LoadAll. A reference is either loaded or failed.
type Set struct {
	images map[string]image.Image
	failed map[string]error
}

func (s Set) Get(ref string) (image.Image, bool) {
	img, ok := s.images[ref]
	return img, ok
}

func (s Set) Loaded() int { return len(s.images) }
func (s Set) Failed() int { return len(s.failed) }

// Err returns the failure recorded for ref, if any.
func (s Set) Err(ref string) error { return s.failed[ref] }

// LoadAll fetches every reference concurrently and waits for all of them.
// Individual failures are logged and recorded, never returned.
func LoadAll(ctx context.Context, f Fetcher, refs []string, log zerolog.Logger) Set {
	set := Set{
		images: make(map[string]image.Image, len(refs)),
		failed: make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, ref := range refs {
		if ref == "" {
			continue
		}
		g.Go(func() error {
			img, err := f.Fetch(gctx, ref)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				set.failed[ref] = err
				log.Warn().Str("texture", ref).Err(err).Msg("texture unavailable, using flat color")
				return nil
			}
			set.images[ref] = img
			log.Debug().Str("texture", ref).Msg("texture loaded")
			return nil
		})
	}

	_ = g.Wait()
	return set
}
