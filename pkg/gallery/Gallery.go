package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/adampresley/cloudgallery/pkg/services"
	"github.com/alitto/pond/v2"
)

/*
AlbumInitializedHook runs after an album has been populated from its local
directory. It returns the album the rest of the build should use, which may
be a different value than the one it received.
*/
type AlbumInitializedHook func(ctx context.Context, album models.Album, settings models.Settings) (models.Album, error)

type GalleryConfig struct {
	SourceDir      string
	OutputDir      string
	Settings       models.Settings
	MaxWorkers     int
	AlbumService   services.AlbumServicer
	PageService    services.PageServicer
	LocalProcessor services.ImageProcessor
	ZipService     services.ZipServicer
}

type BuildResult struct {
	Albums    []models.Album
	Processed int
	Skipped   int
	Failed    int
}

type Gallery struct {
	sourceDir      string
	outputDir      string
	settings       models.Settings
	maxWorkers     int
	albumService   services.AlbumServicer
	pageService    services.PageServicer
	localProcessor services.ImageProcessor
	zipService     services.ZipServicer
	hooks          []AlbumInitializedHook
}

func NewGallery(config GalleryConfig) *Gallery {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 4
	}

	if config.Settings == nil {
		config.Settings = models.Settings{}
	}

	return &Gallery{
		sourceDir:      config.SourceDir,
		outputDir:      config.OutputDir,
		settings:       config.Settings,
		maxWorkers:     config.MaxWorkers,
		albumService:   config.AlbumService,
		pageService:    config.PageService,
		localProcessor: config.LocalProcessor,
		zipService:     config.ZipService,
		hooks:          []AlbumInitializedHook{},
	}
}

// OnAlbumInitialized registers a hook. Hooks run in registration order.
func (g *Gallery) OnAlbumInitialized(hook AlbumInitializedHook) {
	g.hooks = append(g.hooks, hook)
}

/*
Build loads every album, runs the hooks, processes images and writes the
pages. Albums are handled one after another. A hook error stops the build;
an image that fails to process is logged and counted.
*/
func (g *Gallery) Build(ctx context.Context) (BuildResult, error) {
	var (
		err      error
		relPaths []string
		album    models.Album
	)

	result := BuildResult{
		Albums: []models.Album{},
	}

	if relPaths, err = g.albumService.GetAlbumList(g.sourceDir); err != nil {
		return result, err
	}

	slog.Info("building gallery...", "source", g.sourceDir, "output", g.outputDir, "numAlbums", len(relPaths))

	for _, relPath := range relPaths {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		if album, err = g.initializeAlbum(ctx, relPath); err != nil {
			return result, err
		}

		outDir := filepath.Join(g.outputDir, relPath)
		processed, skipped, failed := g.processAlbum(ctx, album, outDir)

		result.Processed += processed
		result.Skipped += skipped
		result.Failed += failed

		if err = g.writeAlbumPage(album, outDir); err != nil {
			return result, err
		}

		result.Albums = append(result.Albums, album)
	}

	if err = g.writePage(filepath.Join(g.outputDir, "index.html"), func(f *os.File) error {
		return g.pageService.RenderIndex(f, result.Albums)
	}); err != nil {
		return result, err
	}

	slog.Info("gallery built", "albums", len(result.Albums), "processed", result.Processed, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (g *Gallery) initializeAlbum(ctx context.Context, relPath string) (models.Album, error) {
	local, err := g.albumService.GetAlbum(g.sourceDir, relPath)

	if err != nil {
		return nil, err
	}

	var album models.Album = local

	for _, hook := range g.hooks {
		if album, err = hook(ctx, album, g.settings); err != nil {
			return nil, fmt.Errorf("album initialized hook failed for '%s': %w", relPath, err)
		}
	}

	return album, nil
}

// processorFor picks the image strategy for an album.
func (g *Gallery) processorFor(album models.Album) services.ImageProcessor {
	switch album.(type) {
	case *models.CloudAlbum:
		return services.NullImageProcessor{}
	default:
		return g.localProcessor
	}
}

func (g *Gallery) processAlbum(ctx context.Context, album models.Album, outDir string) (processed, skipped, failed int) {
	var (
		mu sync.Mutex
	)

	processor := g.processorFor(album)
	l := slog.With("album", album.Info().Name)
	pool := pond.NewPool(g.maxWorkers, pond.WithContext(ctx))

	for _, media := range album.Medias() {
		pool.Submit(func() {
			status, err := processor.ProcessImage(media, outDir)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil || status == models.StatusFailure:
				l.Error("error processing image", "media", media.Name(), "status", status, "error", err)
				failed++

			case status == models.StatusSkipped:
				skipped++

			default:
				processed++
			}
		})
	}

	_ = pool.Stop().Wait()

	if skipped > 0 {
		l.Debug("skipped local processing", "numMedias", skipped)
	}

	return
}

func (g *Gallery) writeAlbumPage(album models.Album, outDir string) error {
	var (
		err     error
		zipName string
	)

	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", outDir, err)
	}

	if g.zipService != nil {
		if zipName, err = g.zipService.CreateZip(album, outDir); err != nil {
			slog.Error("error creating zip archive", "album", album.Info().Name, "error", err)
			zipName = ""
		}
	}

	return g.writePage(filepath.Join(outDir, "index.html"), func(f *os.File) error {
		return g.pageService.RenderAlbum(f, album, zipName)
	})
}

func (g *Gallery) writePage(path string, render func(f *os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directory for '%s': %w", path, err)
	}

	f, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("error creating page '%s': %w", path, err)
	}

	defer f.Close()

	return render(f)
}
