// Package render draws a board view as a PNG image
package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
)

// Canvas defaults
const (
	DefaultWidth  = 640
	DefaultHeight = 360
)

// Layout of the canvas. Bars start at BarX and are BarWidth wide.
const (
	BarX       = 20
	BarWidth   = 360
	BossBarY   = 40
	BossBarH   = 20
	PartyTopY  = 100
	PartyRowH  = 40
	PartyBarH  = 14
	ArtSize    = 200
	artMargin  = 20
	textOffset = 8
)

// Colors used on the board
const (
	ColorBackground = "#1a1a1a"
	ColorTrack      = "#3a3a3a"
	ColorBoss       = "#c0392b"
	ColorParty      = "#27ae60"
	ColorDefending  = "#2980b9"
	ColorText       = "#ecf0f1"
)

// Config configures a Renderer
type Config struct {
	// Width and Height of the canvas (optional)
	Width  int
	Height int
	// AssetDir resolves relative image paths such as the fallback image
	AssetDir string
}

// Validate sets defaults
func (cfg *Config) Validate() error {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}

	vb := errors.NewValidationBuilder()
	if cfg.Width < BarX+BarWidth+ArtSize+2*artMargin {
		vb.Fieldf("width", "must be at least %d", BarX+BarWidth+ArtSize+2*artMargin)
	}
	if cfg.Height < PartyTopY+battle.PartySize*PartyRowH+40 {
		vb.Fieldf("height", "must be at least %d", PartyTopY+battle.PartySize*PartyRowH+40)
	}
	return vb.Build()
}

// Renderer draws board views
type Renderer struct {
	width    int
	height   int
	assetDir string
}

// New creates a Renderer
func New(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		width:    cfg.Width,
		height:   cfg.Height,
		assetDir: cfg.AssetDir,
	}, nil
}

// Render draws the view
func (r *Renderer) Render(view board.View) image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(ColorBackground)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	bossMax := battle.BaseStatsFor(battle.SlotBoss).HP
	r.text(dc, fmt.Sprintf("Boss HP: %d", view.BossHP), BarX, BossBarY-textOffset)
	r.bar(dc, BossBarY, BossBarH, view.BossHP, bossMax, ColorBoss)

	for i, member := range view.Party {
		y := PartyTopY + i*PartyRowH
		label := fmt.Sprintf("%s %d/%d", member.Name(), member.HP, member.MaxHP)
		fill := ColorParty
		if member.Defending {
			label += " (defending)"
			fill = ColorDefending
		}
		r.text(dc, label, BarX, y)
		r.bar(dc, y+6, PartyBarH, member.HP, member.MaxHP, fill)
	}

	r.text(dc, fmt.Sprintf("Max Damage: %d   Last High Score: %d", view.MaxDamage, view.HighScore), BarX, r.height-36)
	if view.Status != "" {
		r.text(dc, view.Status, BarX, r.height-16)
	}

	r.art(dc, view.Image)

	return dc.Image()
}

// EncodePNG renders the view and writes it as a PNG
func (r *Renderer) EncodePNG(w io.Writer, view board.View) error {
	img := r.Render(view)
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(err, "failed to encode board image")
	}
	return nil
}

func (r *Renderer) text(dc *gg.Context, s string, x, y int) {
	dc.SetHexColor(ColorText)
	dc.DrawString(s, float64(x), float64(y))
}

func (r *Renderer) bar(dc *gg.Context, y, h, current, maxValue int, fill string) {
	dc.SetHexColor(ColorTrack)
	dc.DrawRectangle(BarX, float64(y), BarWidth, float64(h))
	dc.Fill()

	if maxValue <= 0 || current <= 0 {
		return
	}
	if current > maxValue {
		current = maxValue
	}

	dc.SetHexColor(fill)
	dc.DrawRectangle(BarX, float64(y), float64(BarWidth*current/maxValue), float64(h))
	dc.Fill()
}

// art draws local images into the panel on the right. Remote images are
// shown by their alt text only.
func (r *Renderer) art(dc *gg.Context, img *imagefeed.Image) {
	x := r.width - ArtSize - artMargin
	y := artMargin

	dc.SetHexColor(ColorTrack)
	dc.DrawRectangle(float64(x), float64(y), ArtSize, ArtSize)
	dc.Fill()

	if img == nil {
		return
	}

	if path, ok := r.localPath(img.URL); ok {
		src, err := imaging.Open(path)
		if err == nil {
			dc.DrawImage(imaging.Fill(src, ArtSize, ArtSize, imaging.Center, imaging.Lanczos), x, y)
			return
		}
		slog.Debug("Board art unavailable", "path", path, "error", err)
	}

	if img.Alt != "" {
		dc.SetHexColor(ColorText)
		dc.DrawStringWrapped(img.Alt, float64(x+ArtSize/2), float64(y+ArtSize/2), 0.5, 0.5, ArtSize-16, 1.2, gg.AlignCenter)
	}
}

func (r *Renderer) localPath(url string) (string, bool) {
	if url == "" || strings.Contains(url, "://") {
		return "", false
	}

	path := url
	if !filepath.IsAbs(path) && r.assetDir != "" {
		path = filepath.Join(r.assetDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
