// Package exporter writes a campaign out as a tree of markdown files,
// suitable for backups or for reading outside arcaide.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/progress"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

// Options configures an export operation.
type Options struct {
	Force bool // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      // Number of files exported
	Paths    []string // Filesystem paths that were written
}

// Run exports every arc and thing in a campaign to dst. Arcs land under
// arcs/<slug>.md and things under things/<slug>.md, rendered the same way
// the show command renders them.
func Run(ctx context.Context, w io.Writer, svc service.Service, campaign, dst string, opts Options) (Result, error) {
	var result Result

	arcs, err := svc.Arcs(ctx, campaign, "")
	if err != nil {
		return result, fmt.Errorf("listing arcs: %w", err)
	}
	things, err := svc.Things(ctx, campaign, "")
	if err != nil {
		return result, fmt.Errorf("listing things: %w", err)
	}

	if len(arcs) == 0 && len(things) == 0 {
		return result, fmt.Errorf("campaign %q has nothing to export", campaign)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}

	// Open destination as root for safe file operations
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(arcs)+len(things))
	defer prog.Done()

	for i := range arcs {
		// Arcs listed without content; fetch each with its documents.
		arc, err := svc.Arc(ctx, campaign, arcs[i].Slug)
		if err != nil {
			return result, fmt.Errorf("getting arc %s: %w", arcs[i].Slug, err)
		}

		name := filepath.Join("arcs", arc.Slug+".md")
		if err := writeFileInRoot(root, name, format.ArcMarkdown(arc), opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, name)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: arc#%s -> %s\n", arc.Slug, outPath)
	}

	for i := range things {
		th, err := svc.Thing(ctx, campaign, things[i].Slug)
		if err != nil {
			return result, fmt.Errorf("getting thing %s: %w", things[i].Slug, err)
		}

		name := filepath.Join("things", th.Slug+".md")
		if err := writeFileInRoot(root, name, format.ThingMarkdown(th), opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, name)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: thing#%s -> %s\n", th.Slug, outPath)
	}

	return result, nil
}

// writeFileInRoot writes content to a file within an os.Root, safely preventing
// path traversal attacks. Creates parent directories as needed.
func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	// Check if file exists when not forcing
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	// Create parent directories within root
	dir := filepath.Dir(name)
	if dir != "." && dir != "" {
		if err := mkdirAllInRoot(root, dir); err != nil {
			return err
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	f, err := root.OpenFile(name, flags, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

// mkdirAllInRoot creates a directory and all parents within an os.Root.
func mkdirAllInRoot(root *os.Root, path string) error {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i := range parts {
		dir := filepath.Join(parts[:i+1]...)
		if err := root.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
