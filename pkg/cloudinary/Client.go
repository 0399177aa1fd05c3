package cloudinary

import (
	"context"
	"fmt"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
)

const (
	maxResults = 500
)

type CloudinaryClient interface {
	ResourcesByTag(ctx context.Context, tag string) ([]Resource, error)
	Resource(ctx context.Context, publicID string, options ResourceOptions) (ResourceDetails, error)
	URL(publicID string, transformations ...Transformation) (string, error)
}

/*
Client wraps the Cloudinary SDK for one account. The credentials live on the
value, so two albums can use two clients without sharing state.
*/
type Client struct {
	cld *cld.Cloudinary
}

func NewClient(config Config) (Client, error) {
	c, err := cld.NewFromParams(config.CloudName, config.APIKey, config.APISecret)

	if err != nil {
		return Client{}, fmt.Errorf("error creating cloudinary client for '%s': %w", config.CloudName, err)
	}

	c.Config.URL.Analytics = false

	return Client{
		cld: c,
	}, nil
}

/*
ResourcesByTag lists every image resource carrying tag, following the
next_cursor of each page until the listing is exhausted.
*/
func (c Client) ResourcesByTag(ctx context.Context, tag string) ([]Resource, error) {
	var (
		err    error
		cursor string
		page   *admin.AssetsResult
	)

	result := []Resource{}

	for {
		page, err = c.cld.Admin.AssetsByTag(ctx, admin.AssetsByTagParams{
			AssetType:  api.Image,
			Tag:        tag,
			MaxResults: maxResults,
			NextCursor: cursor,
		})

		if err != nil {
			return nil, fmt.Errorf("error listing resources with tag '%s': %w", tag, err)
		}

		if page.Error.Message != "" {
			return nil, fmt.Errorf("error listing resources with tag '%s': %w", tag, &APIError{Message: page.Error.Message})
		}

		for _, asset := range page.Assets {
			result = append(result, resourceFromBrief(asset))
		}

		if page.NextCursor == "" || page.NextCursor == cursor {
			break
		}

		cursor = page.NextCursor
	}

	return result, nil
}

func (c Client) Resource(ctx context.Context, publicID string, options ResourceOptions) (ResourceDetails, error) {
	params := admin.AssetParams{
		AssetType:    api.Image,
		DeliveryType: api.Upload,
		PublicID:     publicID,
	}

	if options.ImageMetadata {
		params.ImageMetadata = api.Bool(true)
	}

	if options.Exif {
		params.Exif = api.Bool(true)
	}

	asset, err := c.cld.Admin.Asset(ctx, params)

	if err != nil {
		return ResourceDetails{}, fmt.Errorf("error retrieving resource '%s': %w", publicID, err)
	}

	if asset.Error.Message != "" {
		return ResourceDetails{}, fmt.Errorf("error retrieving resource '%s': %w", publicID, &APIError{Message: asset.Error.Message})
	}

	return ResourceDetails{
		Resource: Resource{
			PublicID:     asset.PublicID,
			ResourceType: asset.ResourceType,
			Type:         asset.Type,
			Format:       asset.Format,
			Version:      asset.Version,
			URL:          asset.URL,
			SecureURL:    asset.SecureURL,
			Width:        asset.Width,
			Height:       asset.Height,
			Bytes:        asset.Bytes,
			CreatedAt:    asset.CreatedAt,
			Tags:         asset.Tags,
		},
		ImageMetadata: asset.ImageMetadata,
		Exif:          stringMap(asset.Exif),
	}, nil
}

/*
URL builds the delivery URL of an uploaded image. Each transformation becomes
one chained component ahead of the public ID.
*/
func (c Client) URL(publicID string, transformations ...Transformation) (string, error) {
	image, err := c.cld.Image(publicID)

	if err != nil {
		return "", fmt.Errorf("error building url for '%s': %w", publicID, err)
	}

	image.Transformation = chain(transformations)
	return image.String()
}

func resourceFromBrief(asset api.BriefAssetResult) Resource {
	return Resource{
		PublicID:     asset.PublicID,
		ResourceType: asset.AssetType,
		Type:         asset.Type,
		Format:       asset.Format,
		Version:      asset.Version,
		URL:          asset.URL,
		SecureURL:    asset.SecureURL,
		Width:        asset.Width,
		Height:       asset.Height,
		Bytes:        asset.Bytes,
		CreatedAt:    asset.CreatedAt,
		Tags:         asset.Tags,
	}
}

func stringMap(value any) map[string]string {
	result := map[string]string{}

	if m, ok := value.(map[string]any); ok {
		for k, v := range m {
			result[k] = fmt.Sprint(v)
		}
	}

	return result
}
