package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"go-canvimation/internal/config"
)

// Stats is the scene state shown by the overlay.
type Stats struct {
	Objects int
	Class   string
	Frames  uint64
	FPS     float64
	TPS     float64
	Width   float64
	Height  float64
	Ratio   float64
}

// Lines formats the stats, one entry per overlay row.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("%d %s objects", s.Objects, s.Class),
		fmt.Sprintf("frame %d  %.0f fps  %.0f tps", s.Frames, s.FPS, s.TPS),
		fmt.Sprintf("%.0fx%.0f @%gx", s.Width, s.Height, s.Ratio),
	}
}

// StatsOverlay draws Stats in the top-left corner of the screen.
type StatsOverlay struct {
	font      *opentype.Font
	face      font.Face
	faceScale float64
}

// NewStatsOverlay parses the embedded Go Regular font.
func NewStatsOverlay() (*StatsOverlay, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay font: %w", err)
	}
	return &StatsOverlay{font: tt}, nil
}

// faceFor returns a face sized for the given pixel ratio, rebuilding it only
// when the ratio changes.
func (o *StatsOverlay) faceFor(scale float64) (font.Face, error) {
	if o.face != nil && o.faceScale == scale {
		return o.face, nil
	}
	face, err := opentype.NewFace(o.font, &opentype.FaceOptions{
		Size:    config.StatsFontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	if o.face != nil {
		o.face.Close()
	}
	o.face, o.faceScale = face, scale
	return face, nil
}

// Draw paints the panel. scale is the backing-store pixel ratio of screen.
func (o *StatsOverlay) Draw(screen *ebiten.Image, s Stats, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	face, err := o.faceFor(scale)
	if err != nil {
		return err
	}
	lines := s.Lines()
	lineHeight := face.Metrics().Height.Ceil()
	margin := int(math.Round(config.StatsMargin * scale))

	width := 0
	for _, line := range lines {
		b := text.BoundString(face, line)
		if w := b.Max.X - b.Min.X; w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, 0, 0,
		float32(width+2*margin), float32(lineHeight*len(lines)+2*margin),
		config.StatsPanelColor, false)
	for i, line := range lines {
		y := margin + lineHeight*(i+1) - face.Metrics().Descent.Ceil()
		text.Draw(screen, line, face, margin, y, color.Color(config.StatsTextColor))
	}
	return nil
}
