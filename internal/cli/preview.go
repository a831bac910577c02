package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/ui"
)

// upperHalf draws the top pixel in the foreground color and the bottom
// pixel in the background color, so one cell shows two rows.
const upperHalf = "▀"

// asciiRamp orders glyphs from dark to bright for monochrome output.
const asciiRamp = " .:-=+*#%@"

// PrintPreview writes a frame to a terminal, two pixel rows per text line.
// With colors disabled the frame is drawn with an ASCII luminance ramp.
func PrintPreview(out io.Writer, frame render.Frame, width, height int) error {
	if width <= 0 || height <= 0 || len(frame) != width*height {
		return fmt.Errorf("preview: frame has %d pixels, want %dx%d", len(frame), width, height)
	}
	w := bufio.NewWriter(out)
	color := ui.ColorsEnabled()

	var packed []uint32
	if color {
		packed = frame.Pack(nil)
	}
	for y := 0; y < height; y += 2 {
		for x := range width {
			top := y*width + x
			if color {
				var bottom uint32
				if y+1 < height {
					bottom = packed[top+width]
				}
				w.WriteString(ui.TrueColor(packed[top], bottom))
				w.WriteString(upperHalf)
				continue
			}
			lum := luminance(frame[top])
			if y+1 < height {
				lum = (lum + luminance(frame[top+width])) / 2
			}
			w.WriteByte(asciiRamp[rampIndex(lum)])
		}
		if color {
			w.WriteString(ui.ColorReset())
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// luminance returns the Rec. 709 relative luminance in [0, 1].
func luminance(c palette.RGB) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

func rampIndex(lum float64) int {
	i := int(lum * float64(len(asciiRamp)))
	return min(max(i, 0), len(asciiRamp)-1)
}
