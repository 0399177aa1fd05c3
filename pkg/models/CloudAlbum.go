package models

/*
CloudAlbum is an album whose media are hosted on Cloudinary. Only images are
ever added to it.
*/
type CloudAlbum struct {
	AlbumInfo
	list mediaList
}

func NewCloudAlbum(info AlbumInfo) *CloudAlbum {
	return &CloudAlbum{
		AlbumInfo: info,
		list:      newMediaList(),
	}
}

func (a *CloudAlbum) Info() AlbumInfo {
	return a.AlbumInfo
}

func (a *CloudAlbum) AddImage(image *RemoteImage) {
	a.list.add(image)
}

func (a *CloudAlbum) Medias() []Media {
	return a.list.medias
}

func (a *CloudAlbum) MediasCount() map[string]int {
	return a.list.mediasCount
}

/*
Thumbnail only uses the thumbnail named in the album description. An empty
result lets the page renderer pick its own default.
*/
func (a *CloudAlbum) Thumbnail() string {
	name := a.Meta.First("thumbnail")

	if name == "" {
		a.logger().Warn("no thumbnail specified in markdown")
		return ""
	}

	media := a.list.findByName(name)

	if media == nil {
		a.logger().Warn("can't find thumb image mentioned in markdown", "thumbnail", name)
		return ""
	}

	return media.Thumbnail()
}
