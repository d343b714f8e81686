// Package config loads the generation manifest.
//
// The manifest is a TOML file (iconforge.toml by default) describing the
// source artwork, its named layers, the output layout, and the palette
// and geometry of each artifact family. Every field has a built-in
// default, so a manifest only needs to state what differs.
package config

import (
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/errors"
	"github.com/mkerner/iconforge/pkg/raster"
)

// DefaultPath is the manifest looked up when no --config flag is given.
const DefaultPath = "iconforge.toml"

// Config is the full generation manifest.
type Config struct {
	Source SourceConfig `toml:"source"`
	Output OutputConfig `toml:"output"`
	App    AppConfig    `toml:"app"`
	Tray   TrayConfig   `toml:"tray"`
	Glyphs GlyphsConfig `toml:"glyphs"`
	Mask   MaskConfig   `toml:"mask"`
}

// Range selects source lines [From, To), zero-based and end-exclusive.
// Line 0 is always the <svg> element and the final line its closing tag;
// both are implicitly part of every layer.
type Range struct {
	From int `toml:"from"`
	To   int `toml:"to"`
}

// SourceConfig locates the vector artwork.
type SourceConfig struct {
	SVG      string           `toml:"svg"`       // main source image
	GlyphDir string           `toml:"glyph_dir"` // directory of auxiliary glyph SVGs
	Layers   map[string]Range `toml:"layers"`    // named line ranges into the source
}

// OutputConfig names the generated files. All paths are relative to Dir.
type OutputConfig struct {
	Dir       string `toml:"dir"`
	ICNS      string `toml:"icns"`
	ICO       string `toml:"ico"`
	Tray      string `toml:"tray"`
	TrayBadge string `toml:"tray_badge"`
	GlyphDir  string `toml:"glyph_dir"` // subdirectory for glyph outputs
}

// AppSize is one app icon output: its pixel size and file name.
type AppSize struct {
	Size int    `toml:"size"`
	Name string `toml:"name"`
}

// AppConfig describes the app icon family.
type AppConfig struct {
	Background   string    `toml:"background"`    // rounded-rectangle fill, hex
	CornerRadius float64   `toml:"corner_radius"` // radius on the working canvas
	Inset        float64   `toml:"inset"`         // artwork fraction of the canvas edge
	Canvas       int       `toml:"canvas"`        // working canvas edge
	Sizes        []AppSize `toml:"sizes"`         // standalone PNG outputs
	ICOSizes     []int     `toml:"ico_sizes"`     // entries of the .ico output
}

// TrayConfig describes the template tray icons.
type TrayConfig struct {
	Size        int     `toml:"size"`         // final edge (Retina @2x points)
	StencilSize int     `toml:"stencil_size"` // working resolution for mask extraction
	FigureLayer string  `toml:"figure_layer"`
	EyesLayer   string  `toml:"eyes_layer"`
	BadgeColor  string  `toml:"badge_color"`
	BadgeRadius float64 `toml:"badge_radius"`
}

// GlyphsConfig describes the small template glyphs.
type GlyphsConfig struct {
	PrimarySize int      `toml:"primary_size"` // primary glyph edge
	MetaSize    int      `toml:"meta_size"`    // metadata glyph edge
	Primary     []string `toml:"primary"`      // glyph names rendered at PrimarySize
	Meta        []string `toml:"meta"`         // glyph names rendered at MetaSize
	Self        string   `toml:"self"`         // name for the main artwork's own glyph; empty disables
}

// MaskConfig holds the pixel-predicate thresholds.
type MaskConfig struct {
	WhiteThreshold uint8 `toml:"white_threshold"` // channel floor for background keying
	AlphaThreshold uint8 `toml:"alpha_threshold"` // coverage floor for mask extraction
	DilatePasses   int   `toml:"dilate_passes"`   // eye cutout growth
}

// Default returns the built-in manifest.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			SVG:      "assets/icon.svg",
			GlyphDir: "assets/glyphs",
			Layers: map[string]Range{
				"figure": {From: 2, To: 5},
				"eyes":   {From: 3, To: 5},
			},
		},
		Output: OutputConfig{
			Dir:       "icons",
			ICNS:      "icon.icns",
			ICO:       "icon.ico",
			Tray:      "tray-icon.png",
			TrayBadge: "tray-icon-notification.png",
			GlyphDir:  "glyphs",
		},
		App: AppConfig{
			Background:   "#5C3A1E",
			CornerRadius: 225,
			Inset:        0.75,
			Canvas:       1024,
			Sizes: []AppSize{
				{Size: 32, Name: "32x32.png"},
				{Size: 128, Name: "128x128.png"},
				{Size: 256, Name: "128x128@2x.png"},
			},
			ICOSizes: []int{16, 32, 48, 256},
		},
		Tray: TrayConfig{
			Size:        44,
			StencilSize: 1024,
			FigureLayer: "figure",
			EyesLayer:   "eyes",
			BadgeColor:  "#FF9500",
			BadgeRadius: 7,
		},
		Glyphs: GlyphsConfig{
			PrimarySize: 40,
			MetaSize:    20,
			Self:        "app",
		},
		Mask: MaskConfig{
			WhiteThreshold: composite.DefaultWhiteThreshold,
			AlphaThreshold: 20,
			DilatePasses:   8,
		},
	}
}

// Load reads the manifest at path over the defaults. An empty path uses
// DefaultPath when that file exists and plain defaults otherwise; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return cfg, nil
		}
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the manifest for malformed values. Layer ranges are
// validated later against the loaded source, which knows its line count.
func (c *Config) Validate() error {
	if c.Source.SVG == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "source.svg cannot be empty")
	}

	for _, col := range []struct{ field, value string }{
		{"app.background", c.App.Background},
		{"tray.badge_color", c.Tray.BadgeColor},
	} {
		if !hexColor.MatchString(col.value) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a #RRGGBB color", col.field, col.value)
		}
	}

	if c.App.Canvas <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "app.canvas must be positive, got %d", c.App.Canvas)
	}
	if c.App.Inset <= 0 || c.App.Inset > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "app.inset must be in (0, 1], got %g", c.App.Inset)
	}
	if len(c.App.Sizes) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "app.sizes cannot be empty")
	}
	for _, s := range c.App.Sizes {
		if s.Size <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "app size must be positive, got %d", s.Size)
		}
		if err := errors.ValidateOutputPath(s.Name); err != nil {
			return err
		}
	}
	for _, s := range c.App.ICOSizes {
		if s <= 0 || s > 256 {
			return errors.New(errors.ErrCodeInvalidConfig, "ico size must be in 1..256, got %d", s)
		}
	}

	if c.Tray.Size <= 0 || c.Tray.StencilSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tray sizes must be positive")
	}
	if c.Tray.FigureLayer == "" || c.Tray.EyesLayer == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tray layer names cannot be empty")
	}
	if c.Tray.BadgeRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tray.badge_radius must be positive, got %g", c.Tray.BadgeRadius)
	}

	if c.Glyphs.PrimarySize <= 0 || c.Glyphs.MetaSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "glyph sizes must be positive")
	}
	for _, name := range c.GlyphNames() {
		if err := errors.ValidateGlyphName(name); err != nil {
			return err
		}
	}

	for name, r := range c.Source.Layers {
		if r.From <= 0 || r.To < r.From {
			return errors.New(errors.ErrCodeInvalidLayer, "layer %q: range [%d,%d) is invalid", name, r.From, r.To)
		}
	}

	if c.Mask.DilatePasses < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "mask.dilate_passes cannot be negative")
	}

	return errors.ValidateOutputPath(c.Output.Dir)
}

// Layers converts the manifest layer table into raster layers.
func (c *Config) Layers() map[string]raster.Layer {
	out := make(map[string]raster.Layer, len(c.Source.Layers))
	for name, r := range c.Source.Layers {
		out[name] = raster.Layer{From: r.From, To: r.To}
	}
	return out
}

// GlyphNames returns every glyph name the manifest asks for, primary
// then metadata. The self glyph is not included; it renders from the
// main source, not the glyph directory.
func (c *Config) GlyphNames() []string {
	names := make([]string, 0, len(c.Glyphs.Primary)+len(c.Glyphs.Meta))
	names = append(names, c.Glyphs.Primary...)
	names = append(names, c.Glyphs.Meta...)
	return names
}
