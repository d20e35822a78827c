// Package render draws field snapshots into image frames and encodes the
// accumulated sequence as a GIF animation.
package render

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	margin  = 15
	massRad = 2
	yscale  = 5.0
)

var (
	framePalette = color.Palette{
		color.RGBA{255, 255, 255, 255}, // background
		color.RGBA{0, 0, 0, 255},       // string
		color.RGBA{255, 0, 0, 255},     // particles
	}
	bgIdx     = uint8(0)
	stringIdx = uint8(1)
	massIdx   = uint8(2)
)

// Frame draws one time step: the string as a polyline across the canvas,
// particles as filled dots on their cells.
func Frame(row []float64, positions []int, width, height int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), framePalette)
	for i := range img.Pix {
		img.Pix[i] = bgIdx
	}
	if len(row) < 2 {
		return img
	}

	span := float64(width - 2*margin)
	oy := height / 2
	amp := span * yscale

	x := func(i int) int { return margin + int(float64(i)*span/float64(len(row)-1)) }
	y := func(v float64) int { return oy - int(v*amp) }

	for i := 0; i < len(row)-1; i++ {
		drawLine(img, x(i), y(row[i]), x(i+1), y(row[i+1]), stringIdx)
	}
	for _, p := range positions {
		if p < 0 || p >= len(row) {
			continue
		}
		fillDisc(img, x(p), y(row[p]), massRad, massIdx)
	}
	return img
}

func drawLine(img *image.Paletted, x0, y0, x1, y1 int, ci uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setPix(img, x0, y0, ci)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func fillDisc(img *image.Paletted, cx, cy, r int, ci uint8) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPix(img, cx+dx, cy+dy, ci)
			}
		}
	}
}

func setPix(img *image.Paletted, x, y int, ci uint8) {
	if (image.Point{x, y}).In(img.Rect) {
		img.SetColorIndex(x, y, ci)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Animator records one frame per step and encodes them on finalization. It
// satisfies the driver's Animator contract.
type Animator struct {
	dest          string
	width, height int
	frameDuration int // [ms]
	frames        []*image.Paletted
}

func NewAnimator(dest string, width, height, frameDuration int) *Animator {
	return &Animator{
		dest:          dest,
		width:         width,
		height:        height,
		frameDuration: frameDuration,
	}
}

func (a *Animator) AddFrame(row []float64, positions []int, _ int) {
	a.frames = append(a.frames, Frame(row, positions, a.width, a.height))
}

func (a *Animator) FrameCount() int { return len(a.frames) }

// Encode writes the accumulated frames as a looping GIF and returns the
// artifact path.
func (a *Animator) Encode() (string, error) {
	f, err := os.Create(a.dest)
	if err != nil {
		return "", err
	}
	defer f.Close()

	delay := a.frameDuration / 10 // GIF delays are in 100ths of a second
	if delay < 1 {
		delay = 1
	}
	out := &gif.GIF{
		Image: a.frames,
		Delay: make([]int, len(a.frames)),
	}
	for i := range out.Delay {
		out.Delay[i] = delay
	}
	if err := gif.EncodeAll(f, out); err != nil {
		return "", err
	}
	return a.dest, nil
}
