package backup

import (
	"path/filepath"
	"strings"
)

// LivePhotoPair is a still image and a short video sharing one logical
// capture, keyed by their common basename.
type LivePhotoPair struct {
	AssetID   string `json:"assetId"`
	ImagePath string `json:"imagePath"`
	VideoPath string `json:"videoPath"`
}

var livePhotoImageExts = map[string]bool{
	".heic": true,
	".jpg":  true,
	".jpeg": true,
}

var livePhotoVideoExts = map[string]bool{
	".mov": true,
}

// PairLivePhotos groups sibling filenames into image+video pairs by shared
// basename. Extensions are compared case-insensitively; basenames are
// compared byte-for-byte. When several files share a basename and
// classification, the last one encountered wins; existing pairing output
// depends on that tie-break, so do not change it. Pairs are emitted in the
// order their basenames were first seen.
func PairLivePhotos(filenames []string) []LivePhotoPair {
	type entry struct {
		imagePath string
		videoPath string
	}

	byBase := map[string]*entry{}
	order := []string{}

	for _, name := range filenames {
		ext := strings.ToLower(filepath.Ext(name))
		base := strings.TrimSuffix(name, filepath.Ext(name))

		isImage := livePhotoImageExts[ext]
		isVideo := livePhotoVideoExts[ext]
		if !isImage && !isVideo {
			continue
		}

		e, ok := byBase[base]
		if !ok {
			e = &entry{}
			byBase[base] = e
			order = append(order, base)
		}

		if isImage {
			e.imagePath = name
		} else {
			e.videoPath = name
		}
	}

	pairs := []LivePhotoPair{}
	for _, base := range order {
		e := byBase[base]
		if e.imagePath == "" || e.videoPath == "" {
			continue
		}
		pairs = append(pairs, LivePhotoPair{
			AssetID:   base,
			ImagePath: e.imagePath,
			VideoPath: e.videoPath,
		})
	}
	return pairs
}
