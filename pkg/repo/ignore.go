package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// builtinIgnores are always ignored regardless of any pattern file.
var builtinIgnores = []string{".bgit", ".git", ".bgitignore", ".gitignore"}

// IgnoreChecker decides which working-tree paths stay out of snapshots
// and survive destructive materialization.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern string
	dirOnly bool
	hasGlob bool
}

// NewIgnoreChecker builds a checker for the repository root: the
// built-in ignores plus the patterns of a .bgitignore file at the root,
// if present. A pattern file that exists but cannot be read logs a
// warning and is treated as absent, so a broken ignore file never blocks
// an operation.
func NewIgnoreChecker(repoRoot string) *IgnoreChecker {
	ic := &IgnoreChecker{}
	for _, p := range builtinIgnores {
		ic.patterns = append(ic.patterns, ignorePattern{pattern: p})
	}

	ignorePath := filepath.Join(repoRoot, ".bgitignore")
	f, err := os.Open(ignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithField("path", ignorePath).Warnf("ignore file unreadable, continuing without it: %v", err)
		}
		return ic
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseIgnoreLine(scanner.Text()); p != nil {
			ic.patterns = append(ic.patterns, *p)
		}
	}
	if err := scanner.Err(); err != nil {
		logrus.WithField("path", ignorePath).Warnf("ignore file read failed partway, using patterns read so far: %v", err)
	}
	return ic
}

// parseIgnoreLine parses one .bgitignore line. Blank lines and comments
// yield nil. A trailing slash marks a directory-only pattern.
func parseIgnoreLine(line string) *ignorePattern {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &ignorePattern{}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	p.pattern = line
	p.hasGlob = strings.ContainsAny(line, "*?[")
	return p
}

// IsIgnored reports whether the slash-separated path, relative to the
// repository root, should be ignored. A directory pattern matches the
// directory itself and everything beneath it; a glob pattern matches
// against path segments; anything else matches as a substring of the
// full path.
func (ic *IgnoreChecker) IsIgnored(path string) bool {
	path = filepath.ToSlash(path)
	segments := strings.Split(path, "/")

	for _, p := range ic.patterns {
		if p.matches(path, segments) {
			return true
		}
	}
	return false
}

func (p *ignorePattern) matches(path string, segments []string) bool {
	if p.dirOnly {
		for _, seg := range segments[:len(segments)-1] {
			if seg == p.pattern {
				return true
			}
		}
		return path == p.pattern || strings.HasPrefix(path, p.pattern+"/")
	}

	if p.hasGlob {
		for _, seg := range segments {
			if matched, _ := filepath.Match(p.pattern, seg); matched {
				return true
			}
		}
		return false
	}

	for _, seg := range segments {
		if seg == p.pattern {
			return true
		}
	}
	return strings.Contains(path, p.pattern)
}
