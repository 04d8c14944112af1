package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestLoadImagePNG(t *testing.T) {
	path := writeTestPNG(t, 24, 16)

	img, err := loadImage(path)
	if err != nil {
		t.Fatalf("loadImage(%q) failed: %v", path, err)
	}
	b := img.Bounds()
	if b.Dx() != 24 || b.Dy() != 16 {
		t.Fatalf("loadImage(%q) bounds = %+v, want 24x16", path, b)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	if _, err := loadImage(filepath.Join(t.TempDir(), "nope.webp")); err == nil {
		t.Fatal("loadImage on a missing file returned no error")
	}
}

func TestLoaderDeliversResults(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	path := writeTestPNG(t, 8, 8)
	l.Req <- Request{Key: "sprite", Path: path}

	select {
	case res := <-l.Res:
		if res.Err != nil {
			t.Fatalf("load failed: %v", res.Err)
		}
		if res.Key != "sprite" || res.Image == nil {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for loader result")
	}
}

func TestLoaderCloseIsIdempotentUnderBackpressure(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	path := writeTestPNG(t, 4, 4)
	for i := range 256 {
		select {
		case l.Req <- Request{
			Key:  strconv.Itoa(i),
			Path: path,
		}:
		default:
		}
	}

	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		l.Close()
		l.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("loader close blocked under backpressure")
	}
}
