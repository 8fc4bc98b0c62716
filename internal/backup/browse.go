package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryListing is the browse result for one directory: its
// subdirectories, its media files, and the live-photo pairs among them.
type DirectoryListing struct {
	Path           string          `json:"path"`
	Directories    []string        `json:"directories"`
	Files          []FileInfo      `json:"files"`
	LivePhotoPairs []LivePhotoPair `json:"livePhotoPairs"`
}

// BrowseFilesystem lists a directory under the global browse root. The
// candidate path may be relative (taken against the root) or absolute; either
// way it must resolve inside the root.
func (s *Service) BrowseFilesystem(path string) (*DirectoryListing, error) {
	resolved, err := ResolveBrowsePath(s.browseRoot, path)
	if err != nil {
		return nil, err
	}
	return listLocalDirectory(resolved)
}

// BrowseStorage lists a directory inside a storage target, confined to both
// the target's base path and the global browse root. Local targets are read
// straight off the filesystem so subdirectories can be shown; remote targets
// go through their adapter and list files only.
func (s *Service) BrowseStorage(ctx context.Context, storageID, path string) (*DirectoryListing, error) {
	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	target := state.FindStorage(storageID)
	if target == nil {
		return nil, ErrStorageNotFound
	}

	if isLocalType(target.Type) {
		resolved, err := ResolveStoragePath(s.browseRoot, target.BasePath, path)
		if err != nil {
			return nil, err
		}
		return listLocalDirectory(resolved)
	}

	adapter, err := s.storages.ForTarget(*target)
	if err != nil {
		return nil, fmt.Errorf("creating storage adapter: %w", err)
	}
	files, err := adapter.ListFiles(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Path)
	}

	return &DirectoryListing{
		Path:           path,
		Directories:    []string{},
		Files:          files,
		LivePhotoPairs: PairLivePhotos(names),
	}, nil
}

// listLocalDirectory reads one directory level and splits entries into
// subdirectories and files.
func listLocalDirectory(dir string) (*DirectoryListing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	listing := &DirectoryListing{
		Path:           dir,
		Directories:    []string{},
		Files:          []FileInfo{},
		LivePhotoPairs: []LivePhotoPair{},
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			listing.Directories = append(listing.Directories, entry.Name())
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		listing.Files = append(listing.Files, FileInfo{
			Path:       filepath.Join(dir, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		names = append(names, entry.Name())
	}

	listing.LivePhotoPairs = PairLivePhotos(names)
	return listing, nil
}
