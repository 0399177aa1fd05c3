package models

type LocalAlbum struct {
	AlbumInfo
	list mediaList
}

func NewLocalAlbum(info AlbumInfo) *LocalAlbum {
	return &LocalAlbum{
		AlbumInfo: info,
		list:      newMediaList(),
	}
}

func (a *LocalAlbum) Info() AlbumInfo {
	return a.AlbumInfo
}

func (a *LocalAlbum) AddMedia(media Media) {
	a.list.add(media)
}

func (a *LocalAlbum) Medias() []Media {
	return a.list.medias
}

func (a *LocalAlbum) MediasCount() map[string]int {
	return a.list.mediasCount
}

/*
Thumbnail returns the thumbnail of the image named in the album description,
falling back to the first image of the album.
*/
func (a *LocalAlbum) Thumbnail() string {
	if name := a.Meta.First("thumbnail"); name != "" {
		if media := a.list.findByName(name); media != nil {
			return media.Thumbnail()
		}

		a.logger().Warn("thumbnail from description not found in album, using first image", "thumbnail", name)
	}

	for _, m := range a.list.medias {
		if m.Type() == MediaTypeImage {
			return m.Thumbnail()
		}
	}

	return ""
}
