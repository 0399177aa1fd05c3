package services

import (
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/adampresley/cloudgallery/pkg/models"
)

type PageServicer interface {
	RenderAlbum(w io.Writer, album models.Album, zipName string) error
	RenderIndex(w io.Writer, albums []models.Album) error
}

type PageServiceConfig struct {
	GalleryTitle string
}

type PageService struct {
	galleryTitle string
	albumTmpl    *template.Template
	indexTmpl    *template.Template
}

type pageMedia struct {
	Name      string
	Big       string
	Thumbnail string
}

type pageAlbum struct {
	Title     string
	Link      string
	Thumbnail string
	Count     int
	Medias    []pageMedia
}

type pageData struct {
	GalleryTitle string
	Album        pageAlbum
	Albums       []pageAlbum
	ZipName      string
}

const layoutTmpl = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{block "title" .}}{{.GalleryTitle}}{{end}}</title>
	<style>
		.thumbs { display: flex; flex-wrap: wrap; gap: 8px; list-style: none; padding: 0; }
		.thumbs img { display: block; }
	</style>
</head>
<body>
{{block "content" .}}{{end}}
</body>
</html>
`

const albumTmpl = `{{define "title"}}{{.Album.Title}} - {{.GalleryTitle}}{{end}}
{{define "content"}}
<h1>{{.Album.Title}}</h1>
{{if .ZipName}}<p><a href="{{.ZipName}}">Download all</a></p>{{end}}
<ul class="thumbs">
{{- range .Album.Medias}}
	<li><a href="{{.Big}}"><img src="{{.Thumbnail}}" alt="{{.Name}}" loading="lazy"></a></li>
{{- end}}
</ul>
{{end}}`

const indexTmpl = `{{define "content"}}
<h1>{{.GalleryTitle}}</h1>
<ul class="thumbs">
{{- range .Albums}}
	<li>
		<a href="{{.Link}}">{{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="{{.Title}}" loading="lazy">{{end}}</a>
		<a href="{{.Link}}">{{.Title}}</a> ({{.Count}})
	</li>
{{- end}}
</ul>
{{end}}`

func NewPageService(config PageServiceConfig) PageService {
	if config.GalleryTitle == "" {
		config.GalleryTitle = "Gallery"
	}

	layout := template.Must(template.New("layout").Parse(layoutTmpl))

	return PageService{
		galleryTitle: config.GalleryTitle,
		albumTmpl:    template.Must(template.Must(layout.Clone()).Parse(albumTmpl)),
		indexTmpl:    template.Must(template.Must(layout.Clone()).Parse(indexTmpl)),
	}
}

func (s PageService) RenderAlbum(w io.Writer, album models.Album, zipName string) error {
	data := pageData{
		GalleryTitle: s.galleryTitle,
		Album:        s.toPageAlbum(album, "", false),
		ZipName:      zipName,
	}

	if err := s.albumTmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error rendering album page for '%s': %w", album.Info().Name, err)
	}

	return nil
}

/*
RenderIndex writes the root page. Links and local thumbnails are made
relative to the output root using each album's relative path.
*/
func (s PageService) RenderIndex(w io.Writer, albums []models.Album) error {
	data := pageData{
		GalleryTitle: s.galleryTitle,
		Albums:       []pageAlbum{},
	}

	for _, album := range albums {
		data.Albums = append(data.Albums, s.toPageAlbum(album, album.Info().RelPath, true))
	}

	if err := s.indexTmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error rendering index page: %w", err)
	}

	return nil
}

func (s PageService) toPageAlbum(album models.Album, prefix string, withThumbnail bool) pageAlbum {
	info := album.Info()
	medias := album.Medias()

	result := pageAlbum{
		Title:     info.Title,
		Link:      relativeURL(prefix, "index.html"),
		Count:     len(medias),
		Medias:    []pageMedia{},
	}

	if withThumbnail {
		result.Thumbnail = album.Thumbnail()
	}

	if withThumbnail && result.Thumbnail == "" && len(medias) > 0 {
		result.Thumbnail = medias[0].Thumbnail()
	}

	if result.Thumbnail != "" {
		result.Thumbnail = relativeURL(prefix, result.Thumbnail)
	}

	for _, m := range medias {
		result.Medias = append(result.Medias, pageMedia{
			Name:      m.Name(),
			Big:       relativeURL(prefix, m.Big()),
			Thumbnail: relativeURL(prefix, m.Thumbnail()),
		})
	}

	return result
}

// relativeURL joins prefix and target unless target is already absolute.
func relativeURL(prefix, target string) string {
	if prefix == "" || strings.Contains(target, "://") || strings.HasPrefix(target, "/") {
		return target
	}

	return path.Join(prefix, target)
}
