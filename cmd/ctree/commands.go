package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/ctree/internal/ast"
	"github.com/xonecas/ctree/internal/highlight"
	"github.com/xonecas/ctree/internal/index"
	"github.com/xonecas/ctree/internal/query"
)

// errTreesDiffer makes `ctree diff` exit non-zero like diff(1).
var errTreesDiffer = errors.New("trees differ")

func (a *app) dumpCmd() *cobra.Command {
	var source bool
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the typed tree of a C file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tu, src, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if source {
				text := string(src)
				if a.color {
					text = highlight.Highlight(text, a.cfg.UI.SyntaxThemeOrDefault())
				}
				fmt.Fprintln(out, text)
				fmt.Fprintln(out)
			}
			return ast.Fprint(out, tu)
		},
	}
	cmd.Flags().BoolVar(&source, "source", false, "print the source before the tree")
	return cmd
}

func (a *app) callsCmd() *cobra.Command {
	var name, typeName string
	cmd := &cobra.Command{
		Use:   "calls FILE",
		Short: "List calls to a function, or to a member of a struct type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tu, src, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			calls := query.FindCalls(tu, name, typeName)
			for _, c := range calls {
				loc := c.Location()
				fmt.Fprintln(out, a.head(loc.String()))
				fmt.Fprint(out, a.excerpt(src, loc.Line))
			}
			log.Debug().Int("matches", len(calls)).Str("name", name).Msg("calls")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "function or member name")
	cmd.Flags().StringVar(&typeName, "type", "", "struct type of the member's operand")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) globalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "globals FILE",
		Short: "List file-scope variable definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tu, _, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range tu.Globals {
				fmt.Fprintf(out, "%s %s %s\n",
					a.head(v.Name),
					v.Type.String(),
					a.faint(fmt.Sprintf("storage=%s referrers=%d", v.Storage, len(v.Referrers))))
			}
			return nil
		},
	}
}

func (a *app) refsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs FILE",
		Short: "List every variable and the places that read or write it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tu, _, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range tu.VarDecls() {
				loc := v.Location()
				fmt.Fprintf(out, "%s %s\n", a.head(v.Name), a.faint(fmt.Sprintf("%d:%d", loc.Line, loc.Column)))
				for _, r := range v.Referrers {
					rl := r.Location()
					fmt.Fprintf(out, "  %d:%d\n", rl.Line, rl.Column)
				}
			}
			return nil
		},
	}
}

func (a *app) outlineCmd() *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "outline [DIR]",
		Short: "Outline the functions and globals of every C file under DIR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			opts := index.Options{
				MaxFileBytes: a.cfg.Parse.MaxFileBytes(),
				Workers:      a.cfg.Parse.WorkersOrDefault(),
				Exclude:      a.cfg.Parse.Exclude,
				OutlineOnly:  true,
			}
			if !noCache {
				opts.Cache = a.openCache()
				defer opts.Cache.Close()
			}

			idx := index.New(dir, opts)
			if err := idx.Build(cmd.Context()); err != nil {
				return err
			}
			for rel, err := range idx.Failures() {
				log.Warn().Str("path", filepath.ToSlash(rel)).Err(err).Msg("not indexed")
			}
			fmt.Fprint(cmd.OutOrStdout(), idx.Outline())
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore the outline cache")
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Show a unified diff of the typed trees of two C files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ta, _, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tb, _, err := a.load(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			da, db := structure(ta), structure(tb)
			if da == db {
				return nil
			}
			edits := myers.ComputeEdits(span.URIFromPath(args[0]), da, db)
			fmt.Fprint(cmd.OutOrStdout(), gotextdiff.ToUnified(args[0], args[1], da, edits))
			return errTreesDiffer
		},
	}
}

// structure dumps tu without its first line, which names the file.
func structure(tu *ast.TranslationUnit) string {
	dump := ast.Sprint(tu)
	if i := strings.IndexByte(dump, '\n'); i >= 0 {
		return dump[i+1:]
	}
	return ""
}

// plainExcerpt formats one numbered source line without color.
func plainExcerpt(src []byte, line, width int) string {
	lines := strings.Split(string(src), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := strings.ReplaceAll(lines[line-1], "\t", "    ")
	return ansi.Truncate(fmt.Sprintf("  %d | %s", line, text), width, "…") + "\n"
}
