// Copyright © 2020 The Rhyme Authors under an MIT-style license.

// Package mod loads the source file list and manifest of a module.
package mod

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rhymelang/rhyme/ast"
	"github.com/rhymelang/rhyme/resolve"
	"gopkg.in/yaml.v3"
)

// SrcExt is the file extension of Rhyme source files.
const SrcExt = ".rhy"

// ManifestFile is the file name of a module's manifest.
const ManifestFile = "rhyme.yaml"

// A Mod contains information about the source for a single module.
type Mod struct {
	// Name is the module name.
	// It is the manifest name if there is one,
	// and otherwise the base name of SrcPath without SrcExt.
	Name string
	// SrcPath is the source file path.
	// This is path to the source file or directory of the module.
	SrcPath string
	// SrcDir may differ from SrcPath
	// if the module is given as a .rhy file, not a directory.
	SrcDir string
	// SrcFiles contains the source file paths in alphabetical order.
	SrcFiles []string
	// Manifest is the module's manifest,
	// or nil if SrcDir has no manifest file.
	Manifest *Manifest
}

// A Manifest holds module settings read from ManifestFile.
type Manifest struct {
	// Name overrides the module name.
	Name string `yaml:"name"`
	// Defines are names defined for directive resolution.
	Defines []string `yaml:"defines"`
	// FloatSize is the bit size of unhinted float literals, 32 or 64.
	// 0 means the checker default.
	FloatSize int `yaml:"float_size"`
	// Trace enables checker tracing.
	Trace bool `yaml:"trace"`
}

// Load returns a *Mod loaded from srcPath.
// srcPath may be either a .rhy source file or a directory of .rhy source files.
func Load(srcPath string) (*Mod, error) {
	srcPath, err := realPath(srcPath)
	if err != nil {
		return nil, err
	}
	srcFiles, srcDir, err := srcFiles(srcPath)
	if err != nil {
		return nil, err
	}
	m := &Mod{
		Name:     strings.TrimSuffix(filepath.Base(srcPath), SrcExt),
		SrcPath:  srcPath,
		SrcDir:   srcDir,
		SrcFiles: srcFiles,
	}
	switch man, err := LoadManifest(filepath.Join(srcDir, ManifestFile)); {
	case errors.Is(err, os.ErrNotExist):
		break
	case err != nil:
		return nil, err
	default:
		m.Manifest = man
		if man.Name != "" {
			m.Name = man.Name
		}
	}
	return m, nil
}

// LoadManifest reads a manifest file.
// Unknown fields are an error.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var man Manifest
	if err := decoder.Decode(&man); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty manifest sets nothing.
			return &man, nil
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	switch man.FloatSize {
	case 0, 32, 64:
	default:
		return nil, fmt.Errorf("manifest: %s: float_size must be 32 or 64, got %d", path, man.FloatSize)
	}
	return &man, nil
}

// Defines returns the manifest defines followed by extra, without duplicates.
func (m *Mod) Defines(extra ...string) []string {
	var defs []string
	seen := make(map[string]bool)
	add := func(ds []string) {
		for _, d := range ds {
			if !seen[d] {
				seen[d] = true
				defs = append(defs, d)
			}
		}
	}
	if m.Manifest != nil {
		add(m.Manifest.Defines)
	}
	add(extra)
	return defs
}

// Parse parses each source file and resolves its directives
// using the module defines and extra defines.
// Units that fail to parse are omitted from the result
// and their errors are returned in source file order.
func (m *Mod) Parse(extra ...string) ([]*ast.Unit, []error) {
	defines := m.Defines(extra...)
	var units []*ast.Unit
	var errs []error
	for _, path := range m.SrcFiles {
		u, err := ast.ParseFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolve.Directives(u, defines)
		units = append(units, u)
	}
	return units, errs
}

func realPath(dir string) (string, error) {
	switch dir {
	case string([]rune{filepath.Separator}):
		return dir, nil
	case ".":
		return os.Getwd()
	default:
		base := filepath.Base(dir)
		dir, err := realPath(filepath.Dir(dir))
		if err != nil {
			return "", err
		}
		switch base {
		case ".":
			return dir, nil
		case "..":
			return filepath.Dir(dir), nil
		default:
			return filepath.Join(dir, base), nil
		}
	}
}

func srcFiles(srcPath string) ([]string, string, error) {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return nil, "", err
	}
	defer srcFile.Close()
	stat, err := srcFile.Stat()
	if err != nil {
		return nil, "", err
	}
	if !stat.IsDir() {
		return []string{srcPath}, filepath.Dir(srcPath), nil
	}
	finfos, err := srcFile.Readdir(-1)
	if err != nil {
		return nil, "", err
	}
	var paths []string
	for _, finfo := range finfos {
		if finfo.IsDir() || !strings.HasSuffix(finfo.Name(), SrcExt) {
			continue
		}
		paths = append(paths, filepath.Join(srcPath, finfo.Name()))
	}
	sort.Strings(paths)
	return paths, srcPath, nil
}
