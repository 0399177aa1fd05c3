package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adampresley/cloudgallery/pkg/cloudinary"
	"github.com/adampresley/cloudgallery/pkg/models"
)

const (
	CloudinaryMarkerFile = ".cloudinary"
	CloudinaryTagPrefix  = "sigal:"

	thumbnailWidth  = 220
	thumbnailHeight = 140
)

type CloudinaryClientFactory func(config cloudinary.Config) (cloudinary.CloudinaryClient, error)

type CloudAlbumAdapterConfig struct {
	NewClient CloudinaryClientFactory
	Now       func() time.Time
}

/*
CloudAlbumAdapter swaps the local media of albums marked with a
.cloudinary file for the images tagged "sigal:<album name>" on Cloudinary.
*/
type CloudAlbumAdapter struct {
	newClient CloudinaryClientFactory
	now       func() time.Time
}

func NewCloudAlbumAdapter(config CloudAlbumAdapterConfig) CloudAlbumAdapter {
	if config.NewClient == nil {
		config.NewClient = func(c cloudinary.Config) (cloudinary.CloudinaryClient, error) {
			return cloudinary.NewClient(c)
		}
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return CloudAlbumAdapter{
		newClient: config.NewClient,
		now:       config.Now,
	}
}

func CloudinaryTag(albumName string) string {
	return CloudinaryTagPrefix + albumName
}

/*
AlbumInitialized is run once per album after local population. Albums without
the marker file, and marked albums with no tagged images, are returned as
they came in. Otherwise a new *models.CloudAlbum is returned in their place.
*/
func (a CloudAlbumAdapter) AlbumInitialized(ctx context.Context, album models.Album, settings models.Settings) (models.Album, error) {
	var (
		err       error
		config    cloudinary.Config
		resources []cloudinary.Resource
	)

	info := album.Info()

	if !isCloudinaryAlbum(info.SrcPath) {
		return album, nil
	}

	slog.Info("album is a cloudinary album", "title", info.Title)

	if config, err = cloudinary.ConfigFromSettings(settings); err != nil {
		return nil, fmt.Errorf("error configuring cloudinary for album '%s': %w", info.Name, err)
	}

	client, err := a.newClient(config)

	if err != nil {
		return nil, fmt.Errorf("error creating cloudinary client for album '%s': %w", info.Name, err)
	}

	tag := CloudinaryTag(info.Name)

	if resources, err = client.ResourcesByTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("error listing cloudinary images for album '%s': %w", info.Name, err)
	}

	if len(resources) == 0 {
		slog.Warn("no cloudinary images for album", "album", info.Name, "tag", tag)
		return album, nil
	}

	cloudAlbum := models.NewCloudAlbum(info)

	if err = a.populate(ctx, client, cloudAlbum, resources); err != nil {
		return nil, err
	}

	return cloudAlbum, nil
}

func (a CloudAlbumAdapter) populate(ctx context.Context, client cloudinary.CloudinaryClient, album *models.CloudAlbum, resources []cloudinary.Resource) error {
	for _, r := range resources {
		switch r.ResourceType {
		case cloudinary.ResourceTypeImage:
			image, err := a.newRemoteImage(ctx, client, r.PublicID)

			if err != nil {
				return fmt.Errorf("error populating album '%s': %w", album.Name, err)
			}

			album.AddImage(image)

		case cloudinary.ResourceTypeVideo:
			slog.Warn("can't do cloudinary videos yet", "album", album.Name, "publicID", r.PublicID)

		default:
			slog.Warn("unknown type for resource", "type", r.ResourceType, "publicID", r.PublicID, "url", r.SecureURL)
		}
	}

	return nil
}

func (a CloudAlbumAdapter) newRemoteImage(ctx context.Context, client cloudinary.CloudinaryClient, publicID string) (*models.RemoteImage, error) {
	details, err := client.Resource(ctx, publicID, cloudinary.ResourceOptions{ImageMetadata: true})

	if err != nil {
		return nil, err
	}

	filename, err := client.URL(publicID)

	if err != nil {
		return nil, err
	}

	// TODO: read the size from the thumb_size setting instead of the fixed 220x140
	thumbnail, err := client.URL(publicID, cloudinary.Transformation{
		Width:  thumbnailWidth,
		Height: thumbnailHeight,
	})

	if err != nil {
		return nil, err
	}

	return models.NewRemoteImage(models.RemoteImageConfig{
		PublicID:     publicID,
		Filename:     filename,
		BigURL:       details.SecureURL,
		ThumbnailURL: thumbnail,
		Date:         a.now(),
	}), nil
}

func isCloudinaryAlbum(srcPath string) bool {
	_, err := os.Stat(filepath.Join(srcPath, CloudinaryMarkerFile))
	return err == nil
}
