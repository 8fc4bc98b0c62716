package backup

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveBrowsePath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name      string
		candidate string
		want      string
		wantErr   error
	}{
		{name: "root itself", candidate: root, want: root},
		{name: "empty means root", candidate: "", want: root},
		{name: "relative subdirectory", candidate: "sub", want: filepath.Join(root, "sub")},
		{name: "absolute subdirectory", candidate: filepath.Join(root, "sub"), want: filepath.Join(root, "sub")},
		{name: "traversal out of root", candidate: root + "/../x", wantErr: ErrPathOutsideBrowseRoot},
		{name: "relative traversal out of root", candidate: "../escape", wantErr: ErrPathOutsideBrowseRoot},
		{name: "unrelated absolute path", candidate: "/etc/passwd", wantErr: ErrPathOutsideBrowseRoot},
		{name: "traversal that stays inside", candidate: "sub/../other", want: filepath.Join(root, "other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBrowsePath(root, tt.candidate)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveBrowsePath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveBrowsePath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveBrowsePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveBrowsePath_PrefixConfusion(t *testing.T) {
	// "/tmp/rootx" must not pass a guard rooted at "/tmp/root".
	base := t.TempDir()
	root := filepath.Join(base, "root")

	if _, err := ResolveBrowsePath(root, filepath.Join(base, "rootx")); !errors.Is(err, ErrPathOutsideBrowseRoot) {
		t.Errorf("sibling with shared name prefix passed the guard, error = %v", err)
	}
}

func TestResolveStoragePath(t *testing.T) {
	browseRoot := t.TempDir()
	basePath := filepath.Join(browseRoot, "storage-a")
	outsideBase := t.TempDir()

	tests := []struct {
		name      string
		browse    string
		base      string
		candidate string
		want      string
		wantErr   error
	}{
		{
			name: "base itself", browse: browseRoot, base: basePath,
			candidate: "", want: basePath,
		},
		{
			name: "relative inside base", browse: browseRoot, base: basePath,
			candidate: "photos/2024", want: filepath.Join(basePath, "photos/2024"),
		},
		{
			name: "escape from base but inside browse root", browse: browseRoot, base: basePath,
			candidate: "../other-storage", wantErr: ErrPathOutsideStorage,
		},
		{
			name: "inside base but outside browse root", browse: basePath, base: outsideBase,
			candidate: "photos", wantErr: ErrPathOutsideBrowseRoot,
		},
		{
			name: "traversal out of everything", browse: browseRoot, base: basePath,
			candidate: "../../../etc", wantErr: ErrPathOutsideStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStoragePath(tt.browse, tt.base, tt.candidate)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveStoragePath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveStoragePath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveStoragePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
