package configuration

import (
	"strings"

	"github.com/adampresley/cloudgallery/pkg/cloudinary"
	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/adampresley/configinator"
)

type Config struct {
	AwsEndpointUrl      string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion           string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId      string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey  string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket           string `flag:"awsbucket" env:"AWS_BUCKET" default:"" description:"S3 bucket the gallery is published to"`
	AwsPrefix           string `flag:"awsprefix" env:"AWS_PREFIX" default:"" description:"Key prefix for published objects"`
	BigSize             int    `flag:"bigsize" env:"BIG_SIZE" default:"1600" description:"Longest edge of resized local images, in pixels"`
	CloudinaryApiKey    string `flag:"cloudinaryapikey" env:"CLOUDINARY_API_KEY" default:"" description:"Cloudinary API key"`
	CloudinaryApiSecret string `flag:"cloudinaryapisecret" env:"CLOUDINARY_API_SECRET" default:"" description:"Cloudinary API secret"`
	CloudinaryCloudName string `flag:"cloudinarycloudname" env:"CLOUDINARY_CLOUD_NAME" default:"" description:"Cloudinary cloud name"`
	DSN                 string `flag:"dsn" env:"DSN" default:"file:./data/cloudgallery.db" description:"Data source name of the publish ledger"`
	GalleryTitle        string `flag:"title" env:"GALLERY_TITLE" default:"Gallery" description:"Title of the gallery index page"`
	Host                string `flag:"host" env:"HOST" default:"localhost:8000" description:"The address and port the preview server binds to"`
	LogLevel            string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxWorkers          int    `flag:"workers" env:"MAX_WORKERS" default:"4" description:"Maximum number of concurrent image processing workers"`
	Mode                string `flag:"mode" env:"MODE" default:"build" description:"What to do. Valid values are 'build', 'publish', and 'serve'"`
	OutputDir           string `flag:"output" env:"OUTPUT_DIR" default:"_build" description:"Directory the gallery is written to"`
	Plugins             string `flag:"plugins" env:"PLUGINS" default:"cloudinary_storage" description:"Comma separated list of plugins to enable"`
	SourceDir           string `flag:"source" env:"SOURCE_DIR" default:"pictures" description:"Directory holding the album directories"`
	ThumbnailHeight     int    `flag:"thumbheight" env:"THUMBNAIL_HEIGHT" default:"210" description:"Height of local thumbnails, in pixels"`
	ThumbnailWidth      int    `flag:"thumbwidth" env:"THUMBNAIL_WIDTH" default:"280" description:"Width of local thumbnails, in pixels"`
	ZipGallery          string `flag:"zip" env:"ZIP_GALLERY" default:"" description:"File name of the per album zip archive. Empty disables archives"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

/*
Settings returns the mapping handed to album hooks. Credentials are only
present when they are set, so a missing one is reported as missing rather
than as an empty string.
*/
func (c Config) Settings() models.Settings {
	result := models.Settings{}

	set := func(key, value string) {
		if value != "" {
			result[key] = value
		}
	}

	set(cloudinary.SettingCloudName, c.CloudinaryCloudName)
	set(cloudinary.SettingAPIKey, c.CloudinaryApiKey)
	set(cloudinary.SettingAPISecret, c.CloudinaryApiSecret)

	return result
}

func (c Config) PluginEnabled(name string) bool {
	for _, p := range strings.Split(c.Plugins, ",") {
		if strings.TrimSpace(p) == name {
			return true
		}
	}

	return false
}
