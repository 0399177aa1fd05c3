package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/cloudgallery/cmd/cloudgallery/internal/configuration"
	"github.com/adampresley/cloudgallery/pkg/gallery"
	"github.com/adampresley/cloudgallery/pkg/services"
	_ "github.com/glebarez/sqlite"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

const (
	pluginCloudinaryStorage = "cloudinary_storage"
)

var (
	Version string = "development"
	appName string = "cloudgallery"

	//go:embed sql-migrations
	sqlMigrationsFs embed.FS

	config configuration.Config

	/* Services */
	albumService   services.AlbumServicer
	db             *sqlz.DB
	ledgerService  services.LedgerServicer
	pageService    services.PageServicer
	publishService services.PublishServicer
	zipService     services.ZipServicer
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("mode", config.Mode),
		slog.String("source", config.SourceDir),
		slog.String("output", config.OutputDir),
		slog.String("plugins", config.Plugins),
	)

	if config.Mode == "serve" {
		serve(config)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	/*
	 * Setup services
	 */
	settings := config.Settings()

	albumService = services.NewAlbumService(services.AlbumServiceConfig{
		Settings: settings,
	})

	pageService = services.NewPageService(services.PageServiceConfig{
		GalleryTitle: config.GalleryTitle,
	})

	zipService = services.NewZipService(services.ZipServiceConfig{
		ZipName: config.ZipGallery,
	})

	g := gallery.NewGallery(gallery.GalleryConfig{
		SourceDir:    config.SourceDir,
		OutputDir:    config.OutputDir,
		Settings:     settings,
		MaxWorkers:   config.MaxWorkers,
		AlbumService: albumService,
		PageService:  pageService,
		LocalProcessor: services.NewLocalImageProcessor(services.LocalImageProcessorConfig{
			BigSize:         uint(config.BigSize),
			ThumbnailWidth:  uint(config.ThumbnailWidth),
			ThumbnailHeight: uint(config.ThumbnailHeight),
		}),
		ZipService: zipService,
	})

	registerPlugins(g)

	if _, err = g.Build(ctx); err != nil {
		slog.Error("error building gallery", "error", err)
		os.Exit(1)
	}

	if config.Mode != "publish" {
		return
	}

	if err = setupPublishing(); err != nil {
		slog.Error("error setting up publishing", "error", err)
		os.Exit(1)
	}

	if _, err = publishService.Publish(config.OutputDir); err != nil {
		slog.Error("error publishing gallery", "error", err)
		os.Exit(1)
	}
}

func registerPlugins(g *gallery.Gallery) {
	if config.PluginEnabled(pluginCloudinaryStorage) {
		adapter := services.NewCloudAlbumAdapter(services.CloudAlbumAdapterConfig{})
		g.OnAlbumInitialized(adapter.AlbumInitialized)
		slog.Debug("plugin registered", "plugin", pluginCloudinaryStorage)
	}
}

func setupPublishing() error {
	var (
		err error
	)

	if config.AwsBucket == "" {
		return fmt.Errorf("publish mode requires a bucket")
	}

	if err = os.MkdirAll(filepath.Dir(strings.TrimPrefix(config.DSN, "file:")), 0o755); err != nil {
		return err
	}

	binds.Register("sqlite", binds.BindByDriver("sqlite3"))
	if db, err = sqlz.Connect("sqlite", config.DSN); err != nil {
		return err
	}

	migrateDatabase()

	ledgerService = services.NewLedgerService(services.LedgerServiceConfig{
		DB: db,
	})

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		return err
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		return err
	}

	publishService = services.NewPublishService(services.PublishServiceConfig{
		Bucket:   config.AwsBucket,
		Prefix:   config.AwsPrefix,
		Region:   config.AwsRegion,
		Ledger:   ledgerService,
		S3Client: s3Client,
	})

	return nil
}

func migrateDatabase() {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	if dirs, err = sqlMigrationsFs.ReadDir("sql-migrations"); err != nil {
		panic(err)
	}

	for _, d := range dirs {
		if d.IsDir() {
			continue
		}

		if strings.HasPrefix(d.Name(), "commit") {
			if b, err = fs.ReadFile(sqlMigrationsFs, filepath.Join("sql-migrations", d.Name())); err != nil {
				panic(err)
			}

			if err = runSqlScript(b); err != nil {
				panic(err)
			}
		}
	}
}

func runSqlScript(script []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}
