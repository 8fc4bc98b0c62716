package backup

import (
	"path/filepath"
	"strings"
)

// Path confinement guards. Both variants canonicalize the candidate to an
// absolute path first, then do a prefix check against the allowed root(s).
// Traversal segments ("..") are resolved by the cleaning step before the
// check, so the prefix comparison is the only security boundary.
//
// Known limitation: the check is a pure string comparison on the cleaned
// path. It does not re-verify after symlink resolution, so a symlink inside
// the root that points outside of it is not caught here.

// ResolveBrowsePath resolves candidate against the global browse root and
// returns its canonical absolute form. A relative candidate is taken as
// relative to the root. Returns ErrPathOutsideBrowseRoot if the resolved
// path escapes the root.
func ResolveBrowsePath(browseRoot, candidate string) (string, error) {
	root, err := filepath.Abs(filepath.Clean(browseRoot))
	if err != nil {
		return "", err
	}

	resolved, err := resolveAgainst(root, candidate)
	if err != nil {
		return "", err
	}

	if !within(root, resolved) {
		return "", ErrPathOutsideBrowseRoot
	}
	return resolved, nil
}

// ResolveStoragePath resolves candidate against a storage target's base path
// and additionally requires the result to stay inside the global browse
// root. The two boundaries fail with distinct errors so callers can report
// the correct denial reason.
func ResolveStoragePath(browseRoot, basePath, candidate string) (string, error) {
	base, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return "", err
	}

	resolved, err := resolveAgainst(base, candidate)
	if err != nil {
		return "", err
	}

	if !within(base, resolved) {
		return "", ErrPathOutsideStorage
	}

	root, err := filepath.Abs(filepath.Clean(browseRoot))
	if err != nil {
		return "", err
	}
	if !within(root, resolved) {
		return "", ErrPathOutsideBrowseRoot
	}

	return resolved, nil
}

// resolveAgainst canonicalizes candidate, joining it to base when relative.
func resolveAgainst(base, candidate string) (string, error) {
	if candidate == "" {
		return base, nil
	}
	if filepath.IsAbs(candidate) {
		return filepath.Abs(filepath.Clean(candidate))
	}
	return filepath.Abs(filepath.Join(base, candidate))
}

// within reports whether p is root itself or a descendant of root.
func within(root, p string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}
