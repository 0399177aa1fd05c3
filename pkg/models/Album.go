package models

import (
	"log/slog"
)

/*
Album is a named collection of media built from one gallery directory. It
is either a *LocalAlbum or a *CloudAlbum, decided before any population of
the cloud media happens.
*/
type Album interface {
	Info() AlbumInfo
	Medias() []Media
	MediasCount() map[string]int
	Thumbnail() string
}

type AlbumInfo struct {
	SrcPath  string
	RelPath  string
	Name     string
	Title    string
	Meta     Meta
	Settings Settings
	Logger   *slog.Logger
}

func (i AlbumInfo) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.Default().With("album", i.Name)
	}

	return i.Logger
}

// mediaList is the ordered media of an album plus the count per media type.
type mediaList struct {
	medias      []Media
	mediasCount map[string]int
}

func newMediaList() mediaList {
	return mediaList{
		medias:      []Media{},
		mediasCount: map[string]int{MediaTypeImage: 0, MediaTypeVideo: 0},
	}
}

func (l *mediaList) add(media Media) {
	l.medias = append(l.medias, media)
	l.mediasCount[media.Type()]++
}

func (l *mediaList) findByName(name string) Media {
	for _, m := range l.medias {
		if m.Name() == name {
			return m
		}
	}

	return nil
}
