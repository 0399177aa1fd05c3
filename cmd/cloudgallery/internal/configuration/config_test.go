package configuration

import (
	"testing"

	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSettings_OnlyIncludesSetCredentials(t *testing.T) {
	config := Config{
		CloudinaryCloudName: "demo",
		CloudinaryApiKey:    "key",
	}

	settings := config.Settings()

	assert.Equal(t, models.Settings{
		"cloudinary_cloud_name": "demo",
		"cloudinary_api_key":    "key",
	}, settings)

	_, err := settings.Require("cloudinary_api_secret")
	assert.ErrorIs(t, err, models.ErrMissingSetting)
}

func TestPluginEnabled(t *testing.T) {
	config := Config{Plugins: "zip_gallery, cloudinary_storage"}

	assert.True(t, config.PluginEnabled("cloudinary_storage"))
	assert.False(t, config.PluginEnabled("cloudinary"))
	assert.False(t, Config{}.PluginEnabled("cloudinary_storage"))
}
