package services

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/nfnt/resize"
)

/*
ImageProcessor turns one media of an album into files under the album's
output directory. The gallery picks an implementation per album.
*/
type ImageProcessor interface {
	ProcessImage(media models.Media, outDir string) (models.ProcessStatus, error)
}

type LocalImageProcessorConfig struct {
	BigSize         uint
	ThumbnailWidth  uint
	ThumbnailHeight uint
	Quality         int
}

type LocalImageProcessor struct {
	bigSize         uint
	thumbnailWidth  uint
	thumbnailHeight uint
	quality         int
}

func NewLocalImageProcessor(config LocalImageProcessorConfig) LocalImageProcessor {
	if config.BigSize == 0 {
		config.BigSize = 1600
	}

	if config.ThumbnailWidth == 0 {
		config.ThumbnailWidth = 280
	}

	if config.ThumbnailHeight == 0 {
		config.ThumbnailHeight = 210
	}

	if config.Quality <= 0 {
		config.Quality = 85
	}

	return LocalImageProcessor{
		bigSize:         config.BigSize,
		thumbnailWidth:  config.ThumbnailWidth,
		thumbnailHeight: config.ThumbnailHeight,
		quality:         config.Quality,
	}
}

/*
ProcessImage writes a resized copy of a local image to outDir and a
thumbnail to outDir/thumbnails. Images smaller than the big size are not
upscaled.
*/
func (p LocalImageProcessor) ProcessImage(media models.Media, outDir string) (models.ProcessStatus, error) {
	var (
		err error
		img image.Image
	)

	local, ok := media.(*models.LocalImage)

	if !ok {
		return models.StatusFailure, fmt.Errorf("cannot process media '%s' of type %T locally", media.Name(), media)
	}

	if img, err = p.decode(local.SrcPath()); err != nil {
		return models.StatusFailure, err
	}

	if err = os.MkdirAll(filepath.Join(outDir, models.ThumbnailDir), 0o755); err != nil {
		return models.StatusFailure, fmt.Errorf("error creating output directory '%s': %w", outDir, err)
	}

	big := resize.Thumbnail(p.bigSize, p.bigSize, img, resize.Lanczos3)

	if err = p.write(filepath.Join(outDir, local.Big()), big); err != nil {
		return models.StatusFailure, err
	}

	thumbnail := resize.Thumbnail(p.thumbnailWidth, p.thumbnailHeight, img, resize.Lanczos3)

	if err = p.write(filepath.Join(outDir, filepath.FromSlash(local.Thumbnail())), thumbnail); err != nil {
		return models.StatusFailure, err
	}

	return models.StatusSuccess, nil
}

func (p LocalImageProcessor) decode(path string) (image.Image, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("error opening image '%s': %w", path, err)
	}

	defer f.Close()

	img, _, err := image.Decode(f)

	if err != nil {
		return nil, fmt.Errorf("error decoding image '%s': %w", path, err)
	}

	return img, nil
}

func (p LocalImageProcessor) write(path string, img image.Image) error {
	f, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("error creating '%s': %w", path, err)
	}

	defer f.Close()

	if err = p.encode(f, filepath.Ext(path), img); err != nil {
		return fmt.Errorf("error encoding '%s': %w", path, err)
	}

	return nil
}

func (p LocalImageProcessor) encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: p.quality})
	}
}

// NullImageProcessor does no file work and reports every media as skipped.
// Cloud albums use it since their images are served by Cloudinary.
type NullImageProcessor struct{}

func (NullImageProcessor) ProcessImage(media models.Media, outDir string) (models.ProcessStatus, error) {
	return models.StatusSkipped, nil
}
