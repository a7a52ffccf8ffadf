package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// alwaysSkippedDirs are never descended into regardless of ignore files,
// matching the always-on defaults of an ignore-crate walk.
var alwaysSkippedDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// ignoreRule is one compiled line from a .gitignore/.ignore file.
type ignoreRule struct {
	g        glob.Glob
	negate   bool
	dirOnly  bool
	anyDepth bool // slashless pattern, compiled with a "**/" prefix
}

// ignoreSet is the ordered rules loaded from one directory's ignore files;
// later rules override earlier ones, and a walk checks every ancestor
// directory's set from root to leaf.
type ignoreSet struct {
	rules []ignoreRule
}

func loadIgnoreFiles(dir string) ignoreSet {
	var set ignoreSet
	for _, name := range []string{".gitignore", ".ignore"} {
		set.rules = append(set.rules, parseIgnoreFile(filepath.Join(dir, name))...)
	}
	return set
}

func parseIgnoreFile(path string) []ignoreRule {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []ignoreRule
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := strings.HasPrefix(line, "!")
		if negate {
			line = line[1:]
		}
		dirOnly := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		pattern := line
		anyDepth := !strings.Contains(pattern, "/")
		if anyDepth {
			pattern = "**/" + pattern
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		rules = append(rules, ignoreRule{g: g, negate: negate, dirOnly: dirOnly, anyDepth: anyDepth})
	}
	return rules
}

// matcher walks alongside a directory traversal, accumulating an ignoreSet
// per visited directory so a deeper file can be checked against every
// ancestor's rules without re-reading them.
type matcher struct {
	root   string
	byDir  map[string]ignoreSet
	hidden bool // true skips dotfiles/dotdirs, matching default ignore-crate behavior
}

func newMatcher(root string, skipHidden bool) *matcher {
	return &matcher{root: root, byDir: make(map[string]ignoreSet), hidden: skipHidden}
}

func (m *matcher) setForDir(dir string) ignoreSet {
	if set, ok := m.byDir[dir]; ok {
		return set
	}
	set := loadIgnoreFiles(dir)
	m.byDir[dir] = set
	return set
}

// SkipDir reports whether the directory at path (basename name) should not
// be descended into.
func (m *matcher) SkipDir(path, name string) bool {
	if alwaysSkippedDirs[name] {
		return true
	}
	if m.hidden && strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	return m.matches(path, true)
}

// SkipFile reports whether the file at path should be skipped.
func (m *matcher) SkipFile(path, name string) bool {
	if m.hidden && strings.HasPrefix(name, ".") {
		return true
	}
	return m.matches(path, false)
}

// matches checks path against every ancestor directory's ignore rules, from
// root down to path's parent, applied in order so a deeper rule can
// override a shallower one. Patterns are matched against path relative to
// the walk root rather than to each rule file's own directory: simpler than
// git's true scoping, but correct for the common case of root-level
// .gitignore/.ignore files.
func (m *matcher) matches(path string, isDir bool) bool {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	var ancestors []string
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		ancestors = append(ancestors, dir)
		if dir == m.root || dir == "." || dir == string(filepath.Separator) {
			break
		}
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		ignored := false
		for _, r := range m.setForDir(ancestors[i]).rules {
			if r.dirOnly && !isDir {
				continue
			}
			// A "**/" prefix still needs a slash before the name, so an
			// entry directly under the root is also tried with a leading "/".
			if r.g.Match(rel) || (r.anyDepth && r.g.Match("/"+rel)) {
				ignored = !r.negate
			}
		}
		if ignored {
			return true
		}
	}
	return false
}
