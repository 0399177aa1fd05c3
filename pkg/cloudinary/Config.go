package cloudinary

import (
	"github.com/adampresley/cloudgallery/pkg/models"
)

const (
	SettingCloudName = "cloudinary_cloud_name"
	SettingAPIKey    = "cloudinary_api_key"
	SettingAPISecret = "cloudinary_api_secret"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

/*
ConfigFromSettings reads the account credentials from settings. All three
keys are required.
*/
func ConfigFromSettings(settings models.Settings) (Config, error) {
	var (
		err    error
		config Config
	)

	if config.CloudName, err = settings.Require(SettingCloudName); err != nil {
		return config, err
	}

	if config.APIKey, err = settings.Require(SettingAPIKey); err != nil {
		return config, err
	}

	if config.APISecret, err = settings.Require(SettingAPISecret); err != nil {
		return config, err
	}

	return config, nil
}
