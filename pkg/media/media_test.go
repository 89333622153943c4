package media

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"clip.mp4", KindVideo},
		{"/tmp/CLIP.MP4", KindVideo},
		{"anim.webp", KindAnimatedImage},
		{"anim.WebP", KindAnimatedImage},
		{"still.png", KindUnknown},
		{"noext", KindUnknown},
		{"archive.mp4.zip", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
			if got := IsSupported(tt.path); got != (tt.want != KindUnknown) {
				t.Errorf("IsSupported(%q) = %v", tt.path, got)
			}
		})
	}
}

func TestNewFrame_RGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{G: 10, B: 20, A: 255})

	f := NewFrame(img)

	if f.Width != 2 || f.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", f.Width, f.Height)
	}
	if len(f.Pix) != 12 {
		t.Fatalf("len(Pix) = %d, want 12", len(f.Pix))
	}
	if f.Pix[0] != 255 || f.Pix[1] != 0 || f.Pix[2] != 0 {
		t.Errorf("pixel (0,0) = %v, want red", f.Pix[0:3])
	}
	if f.Pix[9] != 0 || f.Pix[10] != 10 || f.Pix[11] != 20 {
		t.Errorf("pixel (1,1) = %v, want 0,10,20", f.Pix[9:12])
	}
}

func TestNewFrame_SubImageAndGeneric(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	base.Set(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := base.SubImage(image.Rect(2, 2, 4, 4))

	f := NewFrame(sub)
	if f.Width != 2 || f.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", f.Width, f.Height)
	}
	if f.Pix[0] != 1 || f.Pix[1] != 2 || f.Pix[2] != 3 {
		t.Errorf("first pixel = %v, want 1,2,3", f.Pix[0:3])
	}

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 128})
	g := NewFrame(gray)
	if g.Pix[0] != 128 || g.Pix[1] != 128 || g.Pix[2] != 128 {
		t.Errorf("gray pixel = %v, want 128,128,128", g.Pix)
	}
}

func TestFrame_Image(t *testing.T) {
	f := &Frame{Width: 1, Height: 2, Pix: []uint8{1, 2, 3, 4, 5, 6}}

	img := f.Image()

	if img.Bounds() != image.Rect(0, 0, 1, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	got := img.RGBAAt(0, 1)
	if got != (color.RGBA{R: 4, G: 5, B: 6, A: 255}) {
		t.Errorf("pixel (0,1) = %v, want {4 5 6 255}", got)
	}
}

func TestErrors(t *testing.T) {
	inner := errors.New("broken pipe")
	err := fmt.Errorf("job: %w", &DecodeError{Path: "/videos/a.mp4", Err: inner})

	if !errors.Is(err, inner) {
		t.Error("DecodeError should unwrap to the decoder error")
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Path != "/videos/a.mp4" {
		t.Errorf("errors.As(DecodeError) = %v", de)
	}

	tooMany := &TooManyFramesError{Count: 12001, Limit: 12000}
	if want := "media: too many frames: 12001 (limit 12000)"; tooMany.Error() != want {
		t.Errorf("Error() = %q, want %q", tooMany.Error(), want)
	}
}
