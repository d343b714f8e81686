package cli

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkerner/iconforge/pkg/composite"
	"github.com/mkerner/iconforge/pkg/config"
	"github.com/mkerner/iconforge/pkg/errors"
	"github.com/mkerner/iconforge/pkg/icns"
	"github.com/mkerner/iconforge/pkg/ico"
	"github.com/mkerner/iconforge/pkg/icon"
	"github.com/mkerner/iconforge/pkg/raster"
)

// generateOpts holds the command-line flags shared by the generation
// commands.
type generateOpts struct {
	config   string // manifest path ("" means iconforge.toml or defaults)
	source   string // source SVG override
	output   string // output directory override
	skipICNS bool   // skip the external icns packaging step
	skipICO  bool   // skip the Windows icon
}

// newGenerateCmd creates the generate command producing the complete
// icon set.
//
// Default settings come from the manifest (iconforge.toml if present,
// built-in values otherwise); --source and --output override it.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the complete icon set from the source artwork",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), &opts)
		},
	}

	addPipelineFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.skipICNS, "skip-icns", false, "skip the macOS icon bundle")
	cmd.Flags().BoolVar(&opts.skipICO, "skip-ico", false, "skip the Windows icon")

	return cmd
}

// addPipelineFlags registers the flags every generation command shares.
func addPipelineFlags(cmd *cobra.Command, opts *generateOpts) {
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "manifest file (default iconforge.toml if present)")
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "source SVG (overrides the manifest)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides the manifest)")
}

// pipeline bundles the resolved manifest and the loaded source document.
type pipeline struct {
	cfg *config.Config
	doc *raster.Document
}

// newPipeline loads the manifest, applies flag overrides, loads the
// source artwork, and creates the output directory. The source load is
// the pipeline's explicit existence check; a missing file aborts the
// whole run.
func newPipeline(opts *generateOpts) (*pipeline, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return nil, err
	}
	if opts.source != "" {
		cfg.Source.SVG = opts.source
	}
	if opts.output != "" {
		cfg.Output.Dir = opts.output
	}

	doc, err := raster.Load(cfg.Source.SVG, cfg.Layers())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create output directory %s", cfg.Output.Dir)
	}

	return &pipeline{cfg: cfg, doc: doc}, nil
}

func (p *pipeline) appSpec() icon.AppSpec {
	return icon.AppSpec{
		Canvas:         p.cfg.App.Canvas,
		CornerRadius:   p.cfg.App.CornerRadius,
		Background:     p.cfg.App.Background,
		Inset:          p.cfg.App.Inset,
		WhiteThreshold: p.cfg.Mask.WhiteThreshold,
	}
}

func (p *pipeline) traySpec() icon.TraySpec {
	return icon.TraySpec{
		Size:           p.cfg.Tray.Size,
		StencilSize:    p.cfg.Tray.StencilSize,
		FigureLayer:    p.cfg.Tray.FigureLayer,
		EyesLayer:      p.cfg.Tray.EyesLayer,
		WhiteThreshold: p.cfg.Mask.WhiteThreshold,
		AlphaThreshold: p.cfg.Mask.AlphaThreshold,
		DilatePasses:   p.cfg.Mask.DilatePasses,
		BadgeColor:     p.cfg.Tray.BadgeColor,
		BadgeRadius:    p.cfg.Tray.BadgeRadius,
	}
}

func (p *pipeline) outPath(name string) string {
	return filepath.Join(p.cfg.Output.Dir, name)
}

// savePNG writes img to path, creating parent directories as needed.
func savePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "failed to write %s", path)
	}
	return nil
}

// generateApp writes the standalone app icon PNGs.
func (p *pipeline) generateApp(ctx context.Context) ([]string, error) {
	logger := loggerFromContext(ctx)
	spec := p.appSpec()

	var written []string
	for _, as := range p.cfg.App.Sizes {
		img, err := icon.App(p.doc, spec, as.Size)
		if err != nil {
			return written, err
		}
		path := p.outPath(as.Name)
		if err := savePNG(img, path); err != nil {
			return written, err
		}
		logger.Infof("Generated %s (%dx%d)", path, as.Size, as.Size)
		written = append(written, path)
	}
	return written, nil
}

// generateICNS renders the iconset into a temporary directory and packs
// it with iconutil. The temporary directory is removed unconditionally.
func (p *pipeline) generateICNS(ctx context.Context) (string, error) {
	logger := loggerFromContext(ctx)
	spec := p.appSpec()

	dir, err := os.MkdirTemp("", "iconforge-*.iconset")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to create iconset directory")
	}
	defer os.RemoveAll(dir)

	render := func(size int) (*image.NRGBA, error) {
		return icon.App(p.doc, spec, size)
	}
	if err := icns.WriteIconset(dir, render); err != nil {
		return "", err
	}

	path := p.outPath(p.cfg.Output.ICNS)

	spinner := newSpinner(ctx, "Packing "+path)
	spinner.Start()
	err = icns.Pack(ctx, dir, path)
	spinner.Stop()
	if err != nil {
		return "", err
	}

	logger.Infof("Generated %s", path)
	return path, nil
}

// generateICO writes the multi-size Windows icon.
func (p *pipeline) generateICO(ctx context.Context) (string, error) {
	logger := loggerFromContext(ctx)
	spec := p.appSpec()

	path := p.outPath(p.cfg.Output.ICO)
	render := func(size int) (*image.NRGBA, error) {
		return icon.App(p.doc, spec, size)
	}
	if err := ico.Write(path, render, p.cfg.App.ICOSizes); err != nil {
		return "", err
	}

	logger.Infof("Generated %s (%d sizes)", path, len(p.cfg.App.ICOSizes))
	return path, nil
}

// generateTray writes the tray stencil and its badge variant.
func (p *pipeline) generateTray(ctx context.Context) ([]string, error) {
	logger := loggerFromContext(ctx)
	spec := p.traySpec()

	tray, err := icon.Tray(p.doc, spec)
	if err != nil {
		return nil, err
	}
	trayPath := p.outPath(p.cfg.Output.Tray)
	if err := savePNG(tray, trayPath); err != nil {
		return nil, err
	}
	logger.Infof("Generated %s (%dx%d)", trayPath, spec.Size, spec.Size)

	badge, err := icon.TrayBadge(p.doc, spec)
	if err != nil {
		return []string{trayPath}, err
	}
	badgePath := p.outPath(p.cfg.Output.TrayBadge)
	if err := savePNG(badge, badgePath); err != nil {
		return []string{trayPath}, err
	}
	logger.Infof("Generated %s (%dx%d)", badgePath, spec.Size, spec.Size)

	return []string{trayPath, badgePath}, nil
}

// generateGlyphs writes the template glyphs: the source's own glyph, the
// primary glyphs, and the metadata glyphs.
func (p *pipeline) generateGlyphs(ctx context.Context) ([]string, error) {
	logger := loggerFromContext(ctx)
	glyphDir := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.GlyphDir)

	var written []string
	save := func(img *image.NRGBA, name string, size int) error {
		path := filepath.Join(glyphDir, name+".png")
		if err := savePNG(img, path); err != nil {
			return err
		}
		logger.Infof("Generated %s (%dx%d)", path, size, size)
		written = append(written, path)
		return nil
	}

	if p.cfg.Glyphs.Self != "" {
		img, err := icon.SourceGlyph(p.doc, p.cfg.Glyphs.PrimarySize, composite.Black, p.cfg.Mask.WhiteThreshold)
		if err != nil {
			return written, err
		}
		if err := save(img, p.cfg.Glyphs.Self, p.cfg.Glyphs.PrimarySize); err != nil {
			return written, err
		}
	}

	render := func(names []string, size int) error {
		for _, name := range names {
			src := filepath.Join(p.cfg.Source.GlyphDir, name+".svg")
			img, err := icon.Glyph(src, size, composite.Black, p.cfg.Mask.WhiteThreshold)
			if err != nil {
				return err
			}
			if err := save(img, name, size); err != nil {
				return err
			}
		}
		return nil
	}

	if err := render(p.cfg.Glyphs.Primary, p.cfg.Glyphs.PrimarySize); err != nil {
		return written, err
	}
	if err := render(p.cfg.Glyphs.Meta, p.cfg.Glyphs.MetaSize); err != nil {
		return written, err
	}
	return written, nil
}

// runGenerate produces the complete icon set.
func runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	p, err := newPipeline(opts)
	if err != nil {
		return err
	}
	logger.Infof("Generating icons from %s", p.doc.Path())

	prog := newProgress(logger)
	var written []string

	appPaths, err := p.generateApp(ctx)
	if err != nil {
		return err
	}
	written = append(written, appPaths...)

	if opts.skipICNS {
		logger.Debug("Skipping icns packaging")
	} else {
		path, err := p.generateICNS(ctx)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	if opts.skipICO {
		logger.Debug("Skipping ico output")
	} else {
		path, err := p.generateICO(ctx)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	trayPaths, err := p.generateTray(ctx)
	if err != nil {
		return err
	}
	written = append(written, trayPaths...)

	glyphPaths, err := p.generateGlyphs(ctx)
	if err != nil {
		return err
	}
	written = append(written, glyphPaths...)

	prog.done(fmt.Sprintf("Generated %d files", len(written)))

	printSuccess("Icon set written to %s", p.cfg.Output.Dir)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
