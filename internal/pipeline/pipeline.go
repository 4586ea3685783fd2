// Package pipeline drives one generation run: load the master, make it
// square, then resample and write every icon of the selected platforms.
// Windows specs are packed into a single ICO container instead of
// individual PNG files.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/cwalker-code/generate-flutter-icons/internal/appiconset"
	"github.com/cwalker-code/generate-flutter-icons/internal/ico"
	"github.com/cwalker-code/generate-flutter-icons/internal/iconspec"
	"github.com/cwalker-code/generate-flutter-icons/internal/paths"
	"github.com/cwalker-code/generate-flutter-icons/internal/raster"
)

// Options carries the output sinks for a run. Nil writers discard.
// Any I/O or encode failure aborts the whole run: a partial icon set is
// worse than a clear failure, and a rerun regenerates everything.
type Options struct {
	Progress io.Writer // one line per written file
	Warn     io.Writer // input-quality warnings
}

func (o Options) progressf(format string, args ...any) {
	if o.Progress != nil {
		fmt.Fprintf(o.Progress, format+"\n", args...)
	}
}

func (o Options) warnf(format string, args ...any) {
	if o.Warn != nil {
		fmt.Fprintf(o.Warn, "warning: "+format+"\n", args...)
	}
}

// Generate renders all icons for the selected platforms from the master
// image at masterPath into projectRoot. Platforms are processed in the
// order given; the first failure aborts the run.
func Generate(masterPath, projectRoot string, platforms []iconspec.Platform, opts Options) error {
	master, err := raster.Load(masterPath)
	if err != nil {
		return err
	}

	w := master.Bounds().Dx()
	h := master.Bounds().Dy()

	canonical, padded := raster.Canonicalize(master)
	if padded {
		side := canonical.Bounds().Dx()
		opts.warnf("master icon is not square (%dx%d); padding to %dx%d with transparent borders", w, h, side, side)
	}

	// Undersize check uses the raw master's longer side, not the padded
	// canonical side: padding adds no detail.
	longer := w
	if h > longer {
		longer = h
	}
	if maxTarget := iconspec.MaxTargetSize(platforms); longer < maxTarget {
		opts.warnf("master icon is %dpx, largest target is %dpx; upscaling may reduce quality", longer, maxTarget)
	}

	for _, p := range platforms {
		if err := renderPlatform(canonical, projectRoot, p, opts); err != nil {
			return err
		}
	}

	return writeManifests(projectRoot, platforms)
}

func renderPlatform(canonical *image.NRGBA, projectRoot string, p iconspec.Platform, opts Options) error {
	if p == iconspec.Windows {
		return packWindows(canonical, projectRoot, opts)
	}

	policy := iconspec.PolicyFor(p)
	for _, s := range iconspec.SpecsFor(p) {
		img := raster.Resize(canonical, s.Size, s.Size)
		if policy == iconspec.FlattenOpaque {
			img = raster.Flatten(img)
		}
		data, err := raster.EncodePNG(img)
		if err != nil {
			return fmt.Errorf("pipeline: %s: %s: %w", p, s.Path, err)
		}
		out := filepath.Join(projectRoot, filepath.FromSlash(s.Path))
		if err := paths.AtomicWrite(out, data); err != nil {
			return fmt.Errorf("pipeline: %s: write %s: %w", p, s.Path, err)
		}
		opts.progressf("[OK] %dx%d -> %s", s.Size, s.Size, s.Path)
	}
	return nil
}

// packWindows resamples every windows spec and writes the frames as one
// multi-resolution ICO container, assembled fully in memory first.
func packWindows(canonical *image.NRGBA, projectRoot string, opts Options) error {
	specs := iconspec.SpecsFor(iconspec.Windows)
	frames := make([]*image.NRGBA, len(specs))
	for i, s := range specs {
		frames[i] = raster.Resize(canonical, s.Size, s.Size)
	}

	data, err := ico.Pack(frames)
	if err != nil {
		return fmt.Errorf("pipeline: windows: %s: %w", iconspec.WindowsIcoPath, err)
	}

	out := filepath.Join(projectRoot, filepath.FromSlash(iconspec.WindowsIcoPath))
	if err := paths.AtomicWrite(out, data); err != nil {
		return fmt.Errorf("pipeline: windows: write %s: %w", iconspec.WindowsIcoPath, err)
	}
	opts.progressf("[OK] %d frames -> %s", len(frames), iconspec.WindowsIcoPath)
	return nil
}

// writeManifests emits a Contents.json per appiconset directory that was
// touched, listing every spec written into it. ios, ios-legacy and watch
// share one directory and one manifest.
func writeManifests(projectRoot string, platforms []iconspec.Platform) error {
	var dirs []string
	specsByDir := make(map[string][]iconspec.Spec)
	for _, p := range platforms {
		dir := iconspec.AppIconSetDir(p)
		if dir == "" {
			continue
		}
		if _, seen := specsByDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		specsByDir[dir] = append(specsByDir[dir], iconspec.SpecsFor(p)...)
	}

	for _, dir := range dirs {
		data, err := appiconset.Contents(specsByDir[dir])
		if err != nil {
			return fmt.Errorf("pipeline: %s: %w", dir, err)
		}
		out := filepath.Join(projectRoot, filepath.FromSlash(dir), "Contents.json")
		if err := paths.AtomicWrite(out, data); err != nil {
			return fmt.Errorf("pipeline: write %s/Contents.json: %w", dir, err)
		}
	}
	return nil
}
