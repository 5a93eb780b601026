package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/config"
	"github.com/xonecas/ctree/internal/highlight"
	"github.com/xonecas/ctree/internal/store"
	"github.com/xonecas/ctree/internal/treesitter"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	heading  lipgloss.Style
	dim      lipgloss.Style
	color    bool
	logLevel string
	cfgPath  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ctree",
		Short:         "Typed C syntax trees: dump, query and index C sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	root.PersistentFlags().BoolVar(&a.color, "color", false, "highlight source excerpts and headings")

	root.AddCommand(
		a.dumpCmd(),
		a.callsCmd(),
		a.globalsCmd(),
		a.refsCmd(),
		a.outlineCmd(),
		a.diffCmd(),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly})
	a.cfg = cfg

	if a.color {
		p := highlight.ThemePalette(cfg.UI.SyntaxThemeOrDefault())
		a.heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent))
		a.dim = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim))
	}
	return nil
}

func (a *app) head(s string) string {
	if !a.color {
		return s
	}
	return a.heading.Render(s)
}

func (a *app) faint(s string) string {
	if !a.color {
		return s
	}
	return a.dim.Render(s)
}

// load parses and builds one file.
func (a *app) load(ctx context.Context, path string) (*ast.TranslationUnit, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := treesitter.ParseSource(ctx, path, src)
	if err != nil {
		return nil, nil, err
	}
	tu, err := ast.Build(root)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", path, err)
	}
	return tu, src, nil
}

// excerpt renders the source line at line, highlighted when color is on.
func (a *app) excerpt(src []byte, line int) string {
	width := a.cfg.UI.ExcerptWidthOrDefault()
	if a.color {
		return highlight.Excerpt(src, line, 0, width, a.cfg.UI.SyntaxThemeOrDefault())
	}
	return plainExcerpt(src, line, width)
}

// openCache opens the outline cache unless it is disabled. A cache that
// cannot be opened is logged and skipped.
func (a *app) openCache() *store.Cache {
	if a.cfg.Cache.Disabled {
		return nil
	}
	path, err := a.cfg.Cache.PathOrDefault()
	if err == nil && a.cfg.Cache.Path == "" {
		_, err = config.EnsureDataDir()
	}
	if err != nil {
		log.Warn().Err(err).Msg("outline cache unavailable")
		return nil
	}
	ttl := time.Duration(a.cfg.Cache.CacheTTLOrDefault()) * time.Hour
	c, err := store.Open(path, ttl)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("outline cache unavailable")
		return nil
	}
	return c
}
