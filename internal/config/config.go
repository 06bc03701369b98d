package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// CatalogAPIKey is the credential for the remote catalog service.
	// An empty value means remote search is unusable and the local catalog is served.
	CatalogAPIKey string
	// CatalogBaseURL is the base URL of the remote catalog service.
	CatalogBaseURL string
	// MaxResults is the maximum number of records requested per remote search.
	MaxResults int
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("catalog.baseurl", "https://www.googleapis.com/books/v1")
	viper.SetDefault("catalog.maxresults", 40)

	// Get values from viper
	CatalogAPIKey = viper.GetString("CatalogAPIKey")
	CatalogBaseURL = viper.GetString("catalog.baseurl")
	MaxResults = viper.GetInt("catalog.maxresults")
}

// SetCatalogAPIKey sets the catalog service credential
func SetCatalogAPIKey(key string) {
	CatalogAPIKey = key
}
