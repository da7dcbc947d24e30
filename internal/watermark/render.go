package watermark

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Rendering constants mirroring the site's canvas overlay.
const (
	maxDimension    = 1600
	jpegQuality     = 85
	defaultRotation = -0.6
	defaultAlpha    = 0.55
	thumbFontSize   = 14
	thumbBox        = 128
)

// renderOptions carries the per-render knobs. Zero values mean "derive
// from the image".
type renderOptions struct {
	widthHint  int
	heightHint int
	fontSize   float64
	rotation   float64
	alpha      float64
}

func optionsForMode(mode Mode) renderOptions {
	opts := renderOptions{rotation: defaultRotation, alpha: defaultAlpha}
	if mode == ModeThumb {
		opts.widthHint = thumbBox
		opts.heightHint = thumbBox
		opts.fontSize = thumbFontSize
	}
	return opts
}

// loadImage fetches and decodes the source. Absolute URLs go over HTTP;
// anything else is read from the compositor's base directory. This is
// the only hard failure point of a render.
func (c *Compositor) loadImage(ctx context.Context, src string) (image.Image, error) {
	var r io.ReadCloser
	if u, err := url.Parse(src); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("build image request: %w", err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch image: HTTP %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(filepath.Join(c.baseDir, filepath.FromSlash(src)))
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		r = f
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

// fontFace returns a face at the given size, parsing the configured TTF
// once and falling back to the bundled Go Regular on any failure. Font
// trouble never fails a render.
func (c *Compositor) fontFace(size float64) font.Face {
	c.fontOnce.Do(func() {
		if c.fontPath == "" {
			c.font = fallbackFont()
			return
		}
		data, err := os.ReadFile(c.fontPath)
		if err != nil {
			slog.Warn("watermark font unavailable, using fallback", "path", c.fontPath, "err", err)
			c.font = fallbackFont()
			return
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			slog.Warn("watermark font parse failed, using fallback", "path", c.fontPath, "err", err)
			c.font = fallbackFont()
			return
		}
		c.font = ft
	})

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		face, _ = opentype.NewFace(fallbackFont(), &opentype.FaceOptions{Size: size, DPI: 72})
	}
	return face
}

func fallbackFont() *opentype.Font {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// goregular is a compiled-in asset; it parses.
		panic(err)
	}
	return ft
}

// composite draws the tiled watermark over src and returns a JPEG data
// URL. Panics from the drawing stack are recovered into an error so one
// bad image cannot take down the caller.
func (c *Compositor) composite(src image.Image, opts renderOptions) (dataURL string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("composite: %v", r)
		}
	}()

	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if opts.widthHint > 0 {
		w = opts.widthHint
	}
	if opts.heightHint > 0 {
		h = opts.heightHint
	}
	if w > maxDimension {
		ratio := float64(maxDimension) / float64(w)
		w = maxDimension
		h = int(float64(h)*ratio + 0.5)
	}
	if w < 1 || h < 1 {
		return "", fmt.Errorf("composite: degenerate size %dx%d", w, h)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(canvas, canvas.Bounds(), src, bounds, xdraw.Src, nil)

	dc := gg.NewContextForRGBA(canvas)
	fontPx := opts.fontSize
	if fontPx <= 0 {
		fontPx = float64(w) / 12
		if fontPx < 18 {
			fontPx = 18
		}
	}
	dc.SetFontFace(c.fontFace(fontPx))

	cx := float64(w) / 2
	cy := float64(h) / 2
	dc.RotateAbout(opts.rotation, cx, cy)

	step := fontPx * 4
	if step < 80 {
		step = 80
	}
	span := float64(max(w, h)) * 2

	row := 0
	for y := -span; y <= span; y += step * 1.5 {
		offset := 0.0
		if row%2 == 1 {
			offset = step / 2
		}
		row++
		for x := -span; x <= span; x += step {
			// Offset dark pass stands in for the canvas drop shadow.
			dc.SetRGBA(0, 0, 0, 0.6*opts.alpha)
			dc.DrawStringAnchored(c.text, cx+x+offset+1, cy+y+1, 0.5, 0.5)
			dc.SetRGBA(1, 1, 1, opts.alpha)
			dc.DrawStringAnchored(c.text, cx+x+offset, cy+y, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
