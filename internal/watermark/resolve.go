package watermark

import (
	"path"
	"regexp"
	"strings"
)

// Mode selects the render target: thumbnail (fixed 128px box, small
// font) or full resolution.
type Mode string

const (
	ModeThumb Mode = "thumb"
	ModeFull  Mode = "full"
)

// ParseMode maps a query value onto a Mode, defaulting to full.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, string(ModeThumb)) {
		return ModeThumb
	}
	return ModeFull
}

var extensionRe = regexp.MustCompile(`\.[A-Za-z0-9]{2,4}$`)

// ImageRef is a normalized image reference. Key is the path- and
// extension-stripped basename and is the cache identity, so the same
// image reached as a bare id, a filename, or a relative path shares one
// cache entry per mode.
type ImageRef struct {
	Key      string
	FullSrc  string
	ThumbSrc string
}

// Src returns the source path for a render mode.
func (r ImageRef) Src(mode Mode) string {
	if mode == ModeThumb {
		return r.ThumbSrc
	}
	return r.FullSrc
}

// Resolve normalizes an incoming image reference. A value containing a
// path separator or a recognizable extension is used as-is for the full
// source; a bare id synthesizes images/<id>.jpg. The thumbnail source is
// the first naming convention candidate; nothing probes for existence,
// the load error path surfaces a wrong guess. ok is false for an empty
// reference.
func Resolve(ref string) (ImageRef, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ImageRef{}, false
	}

	normalized := strings.ReplaceAll(ref, `\`, "/")
	base := path.Base(normalized)
	key := strings.TrimSuffix(base, path.Ext(base))

	looksLikePath := strings.Contains(normalized, "/") || extensionRe.MatchString(normalized)
	if looksLikePath {
		return ImageRef{Key: key, FullSrc: normalized, ThumbSrc: normalized}, true
	}
	return ImageRef{
		Key:      key,
		FullSrc:  "images/" + ref + ".jpg",
		ThumbSrc: "images/thumbs/" + ref + "_thumb.jpg",
	}, true
}
