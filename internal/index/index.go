// Package index builds translation units for every C file under a directory
// and renders a compact outline of their functions and globals.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/store"
	"github.com/xonecas/ctree/internal/treesitter"
)

// Options control a Build.
type Options struct {
	// MaxFileBytes skips larger files. 0 means 1MB.
	MaxFileBytes int64
	// Workers bounds concurrent parses. 0 means 4.
	Workers int
	// Exclude holds gitignore-style patterns applied after .gitignore.
	Exclude []string
	// Cache, when set, stores per-file outlines by content hash.
	Cache *store.Cache
	// OutlineOnly skips parsing files whose outline is cached; their Unit
	// is nil.
	OutlineOnly bool
}

// File is one indexed source file.
type File struct {
	Rel     string
	Hash    string // sha256 of the content, hex
	Unit    *ast.TranslationUnit
	Outline string
}

// Index holds the translation units of a project.
type Index struct {
	mu       sync.RWMutex
	root     string
	opts     Options
	files    map[string]*File // relPath -> file
	failures map[string]error
}

// New creates an empty index rooted at root.
func New(root string, opts Options) *Index {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = 1 << 20
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Index{
		root:     root,
		opts:     opts,
		files:    make(map[string]*File),
		failures: make(map[string]error),
	}
}

// Build walks the project tree and indexes every supported file. Files that
// fail to parse or build are recorded in Failures and do not stop the walk.
// Respects .gitignore and Options.Exclude.
func (idx *Index) Build(ctx context.Context) error {
	rules, err := loadIgnore(filepath.Join(idx.root, ".gitignore"), idx.opts.Exclude)
	if err != nil {
		return fmt.Errorf("read .gitignore: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(idx.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Debug().Err(walkErr).Str("path", path).Msg("index: skipping unreadable path")
			return nil
		}
		rel, err := filepath.Rel(idx.root, path)
		if err != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" || rules.match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if rules.match(rel, false) || !treesitter.Supported(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > idx.opts.MaxFileBytes {
			log.Debug().Str("path", rel).Msg("index: skipping large file")
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.opts.Workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx.UpdateFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Debug().
		Str("root", idx.root).
		Int("files", len(idx.Files())).
		Int("failures", len(idx.Failures())).
		Msg("index: built")
	return nil
}

// UpdateFile re-indexes a single file. A failure replaces any earlier entry
// for the file.
func (idx *Index) UpdateFile(ctx context.Context, absPath string) {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil || !treesitter.Supported(absPath) {
		return
	}
	f, err := idx.load(ctx, absPath, rel)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("path", rel).Msg("index: file skipped")
		delete(idx.files, rel)
		idx.failures[rel] = err
		return
	}
	delete(idx.failures, rel)
	idx.files[rel] = f
}

func (idx *Index) load(ctx context.Context, absPath, rel string) (*File, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(src)
	f := &File{Rel: rel, Hash: hex.EncodeToString(sum[:])}

	if idx.opts.OutlineOnly {
		if outline, ok := idx.opts.Cache.GetOutline(f.Hash); ok {
			f.Outline = outline
			return f, nil
		}
	}

	root, err := treesitter.ParseSource(ctx, absPath, src)
	if err != nil {
		return nil, err
	}
	f.Unit, err = ast.Build(root)
	if err != nil {
		var ne *ast.NodeError
		if errors.As(err, &ne) {
			log.Debug().Str("path", rel).Strs("tokens", ne.Tokens).Msg("index: malformed cursor")
		}
		return nil, fmt.Errorf("build %s: %w", rel, err)
	}
	f.Outline = fileOutline(f.Unit)
	idx.opts.Cache.SetOutline(f.Hash, rel, f.Outline)
	return f, nil
}

// Files returns the indexed relative paths, sorted.
func (idx *Index) Files() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	paths := make([]string, 0, len(idx.files))
	for p := range idx.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Unit returns the translation unit for a relative path. It is absent for
// files that failed and for outline-only cache hits.
func (idx *Index) Unit(rel string) (*ast.TranslationUnit, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	f, ok := idx.files[rel]
	if !ok || f.Unit == nil {
		return nil, false
	}
	return f.Unit, true
}

// Units returns every built translation unit by relative path.
func (idx *Index) Units() map[string]*ast.TranslationUnit {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string]*ast.TranslationUnit, len(idx.files))
	for k, f := range idx.files {
		if f.Unit != nil {
			out[k] = f.Unit
		}
	}
	return out
}

// Failures returns the error for every file that could not be indexed.
func (idx *Index) Failures() map[string]error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string]error, len(idx.failures))
	for k, v := range idx.failures {
		out[k] = v
	}
	return out
}

// Snapshot returns a copy of the full index map.
func (idx *Index) Snapshot() map[string]*File {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string]*File, len(idx.files))
	for k, v := range idx.files {
		out[k] = v
	}
	return out
}

// Outline renders the outline of every indexed file.
func (idx *Index) Outline() string {
	return FormatOutline(idx.Snapshot())
}
