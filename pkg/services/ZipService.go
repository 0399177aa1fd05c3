package services

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adampresley/cloudgallery/pkg/models"
)

type ZipServiceConfig struct {
	// ZipName is the archive file name written into each album output directory.
	// An empty name disables archives.
	ZipName string
}

type ZipServicer interface {
	CreateZip(album models.Album, outDir string) (string, error)
}

type ZipService struct {
	zipName string
}

func NewZipService(config ZipServiceConfig) ZipService {
	return ZipService{
		zipName: config.ZipName,
	}
}

/*
CreateZip writes an archive of the album's original images into outDir and
returns its name. Cloud albums have no local originals, so they get no
archive and an empty name is returned.
*/
func (s ZipService) CreateZip(album models.Album, outDir string) (string, error) {
	var (
		err error
		f   *os.File
	)

	if s.zipName == "" {
		return "", nil
	}

	info := album.Info()
	l := slog.With("album", info.Name, "zip", s.zipName)

	if _, ok := album.(*models.CloudAlbum); ok {
		l.Info("skipping zip archive for cloudinary album")
		return "", nil
	}

	if len(album.Medias()) == 0 {
		return "", nil
	}

	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", outDir, err)
	}

	zipPath := filepath.Join(outDir, s.zipName)

	if f, err = os.Create(zipPath); err != nil {
		return "", fmt.Errorf("error creating zip file '%s': %w", zipPath, err)
	}

	defer f.Close()

	zipWriter := zip.NewWriter(f)

	addFile := func(srcPath, name string) error {
		src, err := os.Open(srcPath)

		if err != nil {
			return fmt.Errorf("failed to open source file '%s': %w", srcPath, err)
		}

		defer src.Close()

		dest, err := zipWriter.Create(name)

		if err != nil {
			return fmt.Errorf("failed to create file '%s' in zip: %w", name, err)
		}

		if _, err := io.Copy(dest, src); err != nil {
			return fmt.Errorf("failed to copy file '%s' to zip: %w", name, err)
		}

		return nil
	}

	for _, media := range album.Medias() {
		local, ok := media.(*models.LocalImage)

		if !ok {
			continue
		}

		if err = addFile(local.SrcPath(), local.Name()); err != nil {
			l.Error("failed to add image to zip", "error", err, "image", local.Name())
			continue
		}
	}

	if err = zipWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to close zip writer: %w", err)
	}

	l.Info("zip archive created", "path", zipPath)
	return s.zipName, nil
}
