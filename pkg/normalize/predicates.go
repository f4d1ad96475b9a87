package normalize

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/loaderkit/ruletree/pkg/errors"
)

// extensionPredicate matches paths by file extension, case-insensitively.
// Extensions may be given with or without the leading dot.
func extensionPredicate(extensions []string) func(string) bool {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}

	return func(p string) bool {
		ext := filepath.Ext(p)
		for _, want := range normalized {
			if strings.EqualFold(ext, want) {
				return true
			}
		}
		return false
	}
}

// namePredicate matches the path's base name against a glob pattern
func namePredicate(pattern string) (func(string) bool, error) {
	// Validate the pattern up front so bad globs fail at normalization,
	// not during matching
	if _, err := path.Match(pattern, "probe"); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNormalize,
			"invalid name pattern %q", pattern)
	}

	return func(p string) bool {
		matched, err := path.Match(pattern, filepath.Base(p))
		return err == nil && matched
	}, nil
}

// pathPatternPredicate matches the full path against a glob pattern. A
// leading "**/" lets the pattern match at any directory depth.
func pathPatternPredicate(pattern string) (func(string) bool, error) {
	anyDepth := strings.HasPrefix(pattern, "**/")
	if anyDepth {
		pattern = strings.TrimPrefix(pattern, "**/")
	}

	if _, err := path.Match(pattern, "probe"); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNormalize,
			"invalid path pattern %q", pattern)
	}

	return func(p string) bool {
		p = filepath.ToSlash(p)
		if matched, err := path.Match(pattern, p); err == nil && matched {
			return true
		}
		if !anyDepth {
			return false
		}
		// Retry against every trailing segment run
		segments := strings.Split(p, "/")
		for i := 1; i < len(segments); i++ {
			suffix := strings.Join(segments[i:], "/")
			if matched, err := path.Match(pattern, suffix); err == nil && matched {
				return true
			}
		}
		return false
	}, nil
}

// prefixPredicate matches paths under any of the given prefixes. A prefix
// matches the path itself or any path below it.
func prefixPredicate(prefixes []string) func(string) bool {
	cleaned := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		cleaned = append(cleaned, filepath.ToSlash(filepath.Clean(prefix)))
	}

	return func(p string) bool {
		p = filepath.ToSlash(filepath.Clean(p))
		for _, prefix := range cleaned {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
		}
		return false
	}
}
