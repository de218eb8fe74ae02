package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hookshield/hookshield/internal/rules"
)

const (
	// maxFileBytes caps how much text content a single file may contribute.
	maxFileBytes = 1 << 20 // 1 MiB
	// binarySniffBytes is how far into a file we look for a NUL byte.
	binarySniffBytes = 8 * 1024
)

// excludedDirs are path segments that disqualify a file from scanning.
var excludedDirs = map[string]bool{
	"node_modules":     true,
	".git":             true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"vendor":           true,
	"__pycache__":      true,
	".next":            true,
	".nuxt":            true,
	"coverage":         true,
	".tox":             true,
	".venv":            true,
	"venv":             true,
	".mypy_cache":      true,
	".pytest_cache":    true,
	"bower_components": true,
}

// excludedExts are extensions treated as binary without reading the file.
var excludedExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".svgz": true, ".pdf": true, ".zip": true,
	".gz": true, ".tgz": true, ".bz2": true, ".xz": true, ".7z": true,
	".tar": true, ".rar": true, ".jar": true, ".war": true, ".class": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".bin": true, ".dat": true, ".db": true, ".sqlite": true,
	".mp3": true, ".mp4": true, ".mov": true, ".avi": true, ".wav": true,
	".ogg": true, ".flac": true, ".ttf": true, ".otf": true, ".woff": true,
	".woff2": true, ".eot": true, ".pyc": true, ".wasm": true,
}

// EligibleFile reports whether a relative path passes the cheap path-level
// filters: excluded directory segments, excluded extensions, and any
// user-configured doublestar exclude globs.
func EligibleFile(relPath string, excludeGlobs []string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		if excludedDirs[seg] {
			return false
		}
	}
	if excludedExts[strings.ToLower(filepath.Ext(relPath))] {
		return false
	}
	for _, glob := range excludeGlobs {
		if ok, err := doublestar.Match(glob, filepath.ToSlash(relPath)); err == nil && ok {
			return false
		}
	}
	return true
}

// looksBinary reports whether the first 8 KiB contain a NUL byte.
func looksBinary(b []byte) bool {
	n := len(b)
	if n > binarySniffBytes {
		n = binarySniffBytes
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// ScanFiles runs the registry against each eligible file under root and
// concatenates the findings. Files that cannot be read are skipped rather
// than failing the scan. Dedup is per (rule id, file path): the same class
// of secret may be reported in multiple files.
//
// Allow/ignore suppression applies per file, against that file's own text.
// The second return lists files whose findings were dropped by an ignore
// pattern so the caller can print a low-priority note; allow-suppressed
// files stay fully silent.
func ScanFiles(root string, relPaths []string, registry []rules.Rule, excludeGlobs []string, allow, ignore []*regexp.Regexp) ([]Finding, []string) {
	var findings []Finding
	var ignored []string
	for _, rel := range relPaths {
		if !EligibleFile(rel, excludeGlobs) {
			continue
		}
		abs := filepath.Join(root, rel)
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() || info.Size() > maxFileBytes {
			continue
		}
		data, err := os.ReadFile(abs) // #nosec G304 - paths come from the git index
		if err != nil || looksBinary(data) {
			continue
		}
		text := string(data)
		fileFindings, suppression := Suppress(DetectInFile(text, rel, registry), text, allow, ignore)
		if suppression == SuppressIgnore {
			ignored = append(ignored, rel)
			continue
		}
		findings = append(findings, fileFindings...)
	}
	return findings, ignored
}
