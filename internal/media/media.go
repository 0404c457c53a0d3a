package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind identifies what a file is used for.
type Kind int

const (
	Other Kind = iota
	Movie
	Subtitle
)

func (k Kind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Subtitle:
		return "subtitle"
	default:
		return "other"
	}
}

// File is a classified directory entry.
type File struct {
	Path string
	Kind Kind
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Ext returns the extension including the leading dot, as spelled on disk.
func (f File) Ext() string {
	return filepath.Ext(f.Path)
}

// Stem returns the base name without its extension.
func (f File) Stem() string {
	name := f.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (f File) String() string {
	return f.Path
}

// Classifier maps file extensions onto kinds.
type Classifier struct {
	kinds map[string]Kind
}

// NewClassifier builds a classifier from extension lists. Extensions are
// matched case-insensitively and may be given with or without a leading dot.
func NewClassifier(movieExts, subtitleExts []string) (*Classifier, error) {
	c := &Classifier{kinds: make(map[string]Kind, len(movieExts)+len(subtitleExts))}
	add := func(exts []string, kind Kind) error {
		for _, ext := range exts {
			key := normalizeExt(ext)
			if key == "" {
				continue
			}
			if existing, ok := c.kinds[key]; ok && existing != kind {
				return fmt.Errorf("extension %q classified as both %s and %s", key, existing, kind)
			}
			c.kinds[key] = kind
		}
		return nil
	}
	if err := add(movieExts, Movie); err != nil {
		return nil, err
	}
	if err := add(subtitleExts, Subtitle); err != nil {
		return nil, err
	}
	return c, nil
}

// Classify returns the kind for a path based on its extension.
func (c *Classifier) Classify(path string) Kind {
	if c == nil {
		return Other
	}
	return c.kinds[normalizeExt(filepath.Ext(path))]
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
}

// Listing holds the movie and subtitle files found in one directory, sorted by
// name.
type Listing struct {
	Dir       string
	Movies    []File
	Subtitles []File
	Ignored   int
}

// Scan reads dir (without descending into sub-directories) and classifies its
// regular files.
func Scan(dir string, classifier *Classifier) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("read directory %s: %w", dir, err)
	}

	listing := Listing{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !entry.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				listing.Ignored++
				continue
			}
		}
		file := File{Path: filepath.Join(dir, entry.Name())}
		file.Kind = classifier.Classify(file.Path)
		switch file.Kind {
		case Movie:
			listing.Movies = append(listing.Movies, file)
		case Subtitle:
			listing.Subtitles = append(listing.Subtitles, file)
		default:
			listing.Ignored++
		}
	}

	byName := func(files []File) {
		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	}
	byName(listing.Movies)
	byName(listing.Subtitles)
	return listing, nil
}
