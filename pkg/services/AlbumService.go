package services

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/cloudgallery/pkg/models"
)

const (
	DescriptionFile = "index.md"
)

var (
	DefaultValidExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
)

type AlbumServicer interface {
	GetAlbum(sourceDir, relPath string) (*models.LocalAlbum, error)
	GetAlbumList(sourceDir string) ([]string, error)
}

type AlbumServiceConfig struct {
	Settings        models.Settings
	ValidExtensions []string
}

type AlbumService struct {
	settings        models.Settings
	validExtensions []string
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	if len(config.ValidExtensions) == 0 {
		config.ValidExtensions = DefaultValidExtensions
	}

	return AlbumService{
		settings:        config.Settings,
		validExtensions: config.ValidExtensions,
	}
}

/*
GetAlbum builds the local album for the directory relPath under sourceDir.
Media are the image files of the directory, sorted by name. Title and
thumbnail come from the optional description file.
*/
func (s AlbumService) GetAlbum(sourceDir, relPath string) (*models.LocalAlbum, error) {
	var (
		err     error
		entries []os.DirEntry
		info    fs.FileInfo
	)

	srcPath := filepath.Join(sourceDir, relPath)
	name := filepath.Base(srcPath)

	albumInfo := models.AlbumInfo{
		SrcPath:  srcPath,
		RelPath:  filepath.ToSlash(relPath),
		Name:     name,
		Title:    name,
		Meta:     models.Meta{},
		Settings: s.settings,
		Logger:   slog.With("album", name),
	}

	if albumInfo.Meta, err = s.readMeta(srcPath); err != nil {
		return nil, fmt.Errorf("error reading description for album '%s': %w", name, err)
	}

	if title := albumInfo.Meta.First("title"); title != "" {
		albumInfo.Title = title
	}

	album := models.NewLocalAlbum(albumInfo)

	if entries, err = os.ReadDir(srcPath); err != nil {
		return nil, fmt.Errorf("error reading album directory '%s': %w", srcPath, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !s.isImage(entry.Name()) {
			continue
		}

		if info, err = entry.Info(); err != nil {
			return nil, fmt.Errorf("error reading file info for '%s': %w", entry.Name(), err)
		}

		album.AddMedia(models.NewLocalImage(entry.Name(), filepath.Join(srcPath, entry.Name()), info.ModTime()))
	}

	return album, nil
}

/*
GetAlbumList returns the relative path of every album directory below
sourceDir, sorted. The source directory itself is the gallery root and is
never an album. A directory is an album when it holds at least one image
or a Cloudinary marker file. Hidden directories and thumbnail directories
are skipped.
*/
func (s AlbumService) GetAlbumList(sourceDir string) ([]string, error) {
	result := []string{}

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() || path == sourceDir {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || d.Name() == models.ThumbnailDir {
			return filepath.SkipDir
		}

		isAlbum, err := s.isAlbumDir(path)

		if err != nil {
			return err
		}

		if isAlbum {
			rel, _ := filepath.Rel(sourceDir, path)
			result = append(result, rel)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking source directory '%s': %w", sourceDir, err)
	}

	sort.Strings(result)
	return result, nil
}

func (s AlbumService) isAlbumDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)

	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if entry.Name() == CloudinaryMarkerFile || s.isImage(entry.Name()) {
			return true, nil
		}
	}

	return false, nil
}

func (s AlbumService) isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.IsInSlice(ext, s.validExtensions)
}

func (s AlbumService) readMeta(srcPath string) (models.Meta, error) {
	f, err := os.Open(filepath.Join(srcPath, DescriptionFile))

	if err != nil {
		if os.IsNotExist(err) {
			return models.Meta{}, nil
		}

		return nil, err
	}

	defer f.Close()

	meta, _, err := models.ParseMeta(f)
	return meta, err
}
