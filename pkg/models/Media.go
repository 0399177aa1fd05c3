package models

import (
	"time"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Media interface {
	Type() string
	Name() string
	Filename() string
	Big() string
	Thumbnail() string
	Date() time.Time
	Exif() map[string]any
	RawExif() map[string]any
}

/*
LocalImage is an image file found in an album directory. Big and Thumbnail
are paths relative to the album output directory.
*/
type LocalImage struct {
	name    string
	srcPath string
	date    time.Time
}

func NewLocalImage(name, srcPath string, date time.Time) *LocalImage {
	return &LocalImage{
		name:    name,
		srcPath: srcPath,
		date:    date,
	}
}

func (i *LocalImage) Type() string { return MediaTypeImage }
func (i *LocalImage) Name() string { return i.name }
func (i *LocalImage) Filename() string { return i.name }
func (i *LocalImage) SrcPath() string { return i.srcPath }
func (i *LocalImage) Big() string { return i.name }
func (i *LocalImage) Thumbnail() string { return ThumbnailDir + "/" + i.name }
func (i *LocalImage) Date() time.Time { return i.date }
func (i *LocalImage) Exif() map[string]any { return map[string]any{} }
func (i *LocalImage) RawExif() map[string]any { return map[string]any{} }

const ThumbnailDir = "thumbnails"

type RemoteImageConfig struct {
	PublicID     string
	Filename     string
	BigURL       string
	ThumbnailURL string
	Date         time.Time
}

/*
RemoteImage is an image hosted on Cloudinary. Date and EXIF are not read from
the resource metadata yet: Date is the construction time and both EXIF maps
are empty.
*/
type RemoteImage struct {
	publicID  string
	filename  string
	big       string
	thumbnail string
	date      time.Time
}

func NewRemoteImage(config RemoteImageConfig) *RemoteImage {
	return &RemoteImage{
		publicID:  config.PublicID,
		filename:  config.Filename,
		big:       config.BigURL,
		thumbnail: config.ThumbnailURL,
		date:      config.Date,
	}
}

func (i *RemoteImage) PublicID() string { return i.publicID }
func (i *RemoteImage) Type() string { return MediaTypeImage }
func (i *RemoteImage) Name() string { return i.publicID }
func (i *RemoteImage) Filename() string { return i.filename }
func (i *RemoteImage) Big() string { return i.big }
func (i *RemoteImage) Thumbnail() string { return i.thumbnail }
func (i *RemoteImage) Date() time.Time { return i.date }
func (i *RemoteImage) Exif() map[string]any { return map[string]any{} }
func (i *RemoteImage) RawExif() map[string]any { return map[string]any{} }
