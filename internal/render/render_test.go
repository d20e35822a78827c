package render

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func TestFrame_DrawsStringAndParticles(t *testing.T) {
	row := make([]float64, 50)
	for i := range row {
		row[i] = 0.01
	}
	img := Frame(row, []int{25}, 320, 240)

	if img.Rect.Dx() != 320 || img.Rect.Dy() != 240 {
		t.Fatalf("unexpected bounds %v", img.Rect)
	}

	var stringPixels, massPixels int
	for _, ci := range img.Pix {
		switch ci {
		case stringIdx:
			stringPixels++
		case massIdx:
			massPixels++
		}
	}
	if stringPixels == 0 {
		t.Error("no string pixels drawn")
	}
	if massPixels == 0 {
		t.Error("no particle pixels drawn")
	}
}

func TestAnimator_EncodeRoundTrip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "anim.gif")
	a := NewAnimator(dest, 160, 120, 40)

	row := make([]float64, 20)
	for step := 0; step < 5; step++ {
		row[10] = 0.005 * float64(step)
		a.AddFrame(row, nil, step)
	}
	if a.FrameCount() != 5 {
		t.Fatalf("expected 5 frames, got %d", a.FrameCount())
	}

	path, err := a.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if path != dest {
		t.Errorf("expected %s, got %s", dest, path)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.Image) != 5 {
		t.Errorf("expected 5 encoded frames, got %d", len(decoded.Image))
	}
	if decoded.Delay[0] != 4 {
		t.Errorf("expected delay 4, got %d", decoded.Delay[0])
	}
}
