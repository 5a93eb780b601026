package index

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// ignoreRules matches relative paths against gitignore-style patterns. The
// last matching rule wins, so negations can re-include a path.
type ignoreRules struct {
	rules []ignoreRule
}

type ignoreRule struct {
	re       *regexp.Regexp
	negate   bool
	dirOnly  bool
	anchored bool
}

// loadIgnore reads patterns from a .gitignore file, if it exists, followed
// by extra patterns.
func loadIgnore(gitignorePath string, extra []string) (*ignoreRules, error) {
	r := &ignoreRules{}
	if f, err := os.Open(gitignorePath); err == nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			r.add(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	for _, p := range extra {
		r.add(p)
	}
	return r, nil
}

func (r *ignoreRules) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	var rule ignoreRule
	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = line[1:]
	}
	if strings.HasPrefix(line, "/") {
		rule.anchored = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	re, err := regexp.Compile(globRegexp(line, rule.anchored))
	if err != nil {
		return
	}
	rule.re = re
	r.rules = append(r.rules, rule)
}

// match reports whether rel (slash or OS separated) is ignored.
func (r *ignoreRules) match(rel string, dir bool) bool {
	if r == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	ignored := false
	for _, rule := range r.rules {
		var hit bool
		switch {
		case rule.dirOnly && dir:
			hit = rule.re.MatchString(rel)
		case rule.dirOnly:
			hit = rule.re.MatchString(path.Dir(rel))
		case rule.anchored:
			hit = rule.re.MatchString(rel)
		default:
			hit = rule.re.MatchString(rel) || rule.re.MatchString(path.Base(rel))
		}
		if hit {
			ignored = !rule.negate
		}
	}
	return ignored
}

// globRegexp translates a gitignore glob. Unanchored patterns match at any
// directory depth and also match everything below a matched directory.
func globRegexp(glob string, anchored bool) string {
	var b strings.Builder
	if anchored {
		b.WriteString("^")
	} else {
		b.WriteString("(^|/)")
	}
	for i := 0; i < len(glob); i++ {
		switch ch := glob[i]; ch {
		case '*':
			switch {
			case strings.HasPrefix(glob[i:], "**/"):
				b.WriteString("(.*/)?")
				i += 2
			case strings.HasPrefix(glob[i:], "**"):
				b.WriteString(".*")
				i++
			default:
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			if j := strings.IndexByte(glob[i:], ']'); j > 0 {
				b.WriteString(glob[i : i+j+1])
				i += j
			} else {
				b.WriteString(`\[`)
			}
		case '\\':
			if i+1 < len(glob) {
				i++
				b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	if anchored {
		b.WriteString("$")
	} else {
		b.WriteString("(/.*)?$")
	}
	return b.String()
}
