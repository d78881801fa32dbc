package standings

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"sblbot/sblapi"
)

// MaxImageRows bounds the rendered table
const MaxImageRows = 16

// tableColumn defines a column in the standings table
type tableColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// tableStyle defines the visual style of the table
type tableStyle struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
	Podium    [3][4]float64 // RGBA row highlights for gold, silver, bronze
}

// ImageGenerator renders division standings as PNG
type ImageGenerator struct {
	style tableStyle
}

// NewImageGenerator creates a new image generator with default style
func NewImageGenerator() *ImageGenerator {
	return &ImageGenerator{
		style: tableStyle{
			Width:     420,
			MinHeight: 160,
			Padding:   15,
			RowHeight: 26,
			Podium: [3][4]float64{
				{1, 0.84, 0, 0.1},
				{0.8, 0.8, 0.8, 0.08},
				{0.8, 0.5, 0.2, 0.06},
			},
		},
	}
}

// Render draws the ranked table of a division
func (g *ImageGenerator) Render(title string, rows []sblapi.TeamStanding) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(rows)).
			Debug("Standings image generation completed")
	}()

	ranked := Rank(rows)
	if len(ranked) > MaxImageRows {
		ranked = ranked[:MaxImageRows]
	}

	p := g.style.Padding
	columns := []tableColumn{
		{Header: "#", XPosition: p, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Team", XPosition: p + 28, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "W", XPosition: p + 230, ColorRGB: [3]float64{0.85, 1, 0.85}},
		{Header: "L", XPosition: p + 265, ColorRGB: [3]float64{1, 0.85, 0.85}},
		{Header: "Pts", XPosition: p + 300, ColorRGB: [3]float64{1, 0.95, 0.6}},
		{Header: "GD", XPosition: p + 345, ColorRGB: [3]float64{0.85, 0.85, 1}},
	}

	// Title (30px) + header (25px) + header padding (30px) + rows + bottom padding (15px)
	height := max(30+25+30+len(ranked)*g.style.RowHeight+15, g.style.MinHeight)

	dc := gg.NewContext(g.style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(g.style.Width), float64(i))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 14)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, truncateRunes(title, 40), float64(p), 22)

	dc.SetFontFace(face)
	y := float64(55)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	for i, team := range ranked {
		if i < len(g.style.Podium) {
			c := g.style.Podium[i]
			dc.SetRGBA(c[0], c[1], c[2], c[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
		dc.Fill()

		gd := "-"
		if diff, ok := team.GoalDifference(); ok {
			gd = signed(diff)
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			truncateRunes(team.DisplayName(), 24),
			fmt.Sprintf("%d", team.Wins),
			fmt.Sprintf("%d", team.Losses),
			fmt.Sprintf("%d", team.Points),
			gd,
		}
		for j, col := range columns {
			dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			drawSharpText(dc, cells[j], float64(col.XPosition), y)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// drawSharpText draws text over a faint offset shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}
