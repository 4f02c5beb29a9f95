package styler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Polkas/styler/serrors"
)

// ErrNeedsStyling is returned under dry mode "fail" when a file would
// change
var ErrNeedsStyling = errors.New("file needs styling")

// FileResult reports the outcome for one file of a batch run
type FileResult struct {
	Path    string
	Changed bool
	Err     error
}

// Extensions the engine recognizes. Literate formats are listed so the
// filetype option accepts them; their chunk extraction lives outside the
// engine and the walker skips them.
var knownFiletypes = map[string]bool{
	"r":         true,
	"rprofile":  true,
	"rmd":       true,
	"rmarkdown": true,
	"rnw":       true,
	"qmd":       true,
}

var literateFiletypes = map[string]bool{
	"rmd":       true,
	"rmarkdown": true,
	"rnw":       true,
	"qmd":       true,
}

func validFiletypes(types []string) error {
	for _, t := range types {
		if !knownFiletypes[strings.ToLower(t)] {
			return serrors.NewInvalidOption(fmt.Sprintf("unknown filetype %q", t))
		}
	}
	return nil
}

// filetypeOf classifies a path, returning "" for files the styler does
// not handle
func filetypeOf(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if base == ".rprofile" {
		return "rprofile"
	}
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "r":
		return "r"
	case "rmd":
		return "rmd"
	case "rmarkdown":
		return "rmarkdown"
	case "rnw":
		return "rnw"
	case "qmd":
		return "qmd"
	}
	return ""
}

// StyleFile styles one file in place, honoring the dry mode. It reports
// whether the content changed (or would change). Nothing is written on
// any error.
func (s *Styler) StyleFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	styled, changed, err := s.styleNamed(string(raw), path)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	switch s.opts.Dry {
	case DryOn:
		return true, nil
	case DryFail:
		return true, fmt.Errorf("%w: %s", ErrNeedsStyling, path)
	}
	if err := os.WriteFile(path, []byte(styled), info.Mode().Perm()); err != nil {
		return true, err
	}
	return true, nil
}

// StyleText styles raw text through a one-off engine with the given
// options; the package-level convenience mirroring style_text
func StyleText(text string, opts Options) (string, bool, error) {
	s, err := New(opts)
	if err != nil {
		return text, false, err
	}
	return s.StyleText(text)
}

// StyleDir styles every matching file under dir. Per-file failures are
// collected in the results, they do not abort the walk.
func (s *Styler) StyleDir(dir string, recursive bool) ([]FileResult, error) {
	wanted := make(map[string]bool, len(s.opts.Filetypes))
	for _, t := range s.opts.Filetypes {
		wanted[strings.ToLower(t)] = true
	}
	if len(wanted) == 0 {
		wanted["r"] = true
		wanted["rprofile"] = true
	}

	var results []FileResult
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (!recursive || s.excludedDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		ft := filetypeOf(path)
		if ft == "" || !wanted[ft] || s.excludedFile(path) {
			return nil
		}
		if literateFiletypes[ft] {
			s.logger.Debug("skipping literate document, chunk extraction is external",
				zap.String("file", path))
			return nil
		}
		changed, ferr := s.StyleFile(path)
		results = append(results, FileResult{Path: path, Changed: changed, Err: ferr})
		return nil
	})
	if err != nil {
		return results, err
	}
	return results, nil
}

// StylePkg styles the sources of an R package: R/, tests/ and data-raw/
// under the package root, which must hold a DESCRIPTION file.
func (s *Styler) StylePkg(root string) ([]FileResult, error) {
	if _, err := os.Stat(filepath.Join(root, "DESCRIPTION")); err != nil {
		return nil, serrors.NewInvalidOption(root + " is not an R package (no DESCRIPTION)")
	}
	var results []FileResult
	for _, sub := range []string{"R", "tests", "data-raw"} {
		dir := filepath.Join(root, sub)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		rs, err := s.StyleDir(dir, true)
		results = append(results, rs...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (s *Styler) excludedDir(name string) bool {
	for _, d := range s.opts.ExcludeDirs {
		if name == d {
			return true
		}
	}
	return false
}

func (s *Styler) excludedFile(path string) bool {
	for _, f := range s.opts.ExcludeFiles {
		if path == f || filepath.Base(path) == f {
			return true
		}
	}
	return false
}
