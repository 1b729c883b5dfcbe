package crossref

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds CrossRef client settings, read from the environment.
type Config struct {
	// BaseURL is the CrossRef REST API root.
	BaseURL string `envconfig:"CROSSREF_BASE_URL" default:"https://api.crossref.org"`

	// Mailto joins the polite pool when set; CrossRef asks clients to
	// identify themselves with a contact address.
	Mailto string `envconfig:"CROSSREF_MAILTO"`

	// TimeoutSeconds bounds each lookup request.
	TimeoutSeconds int `envconfig:"CROSSREF_TIMEOUT_SECONDS" default:"100"`

	// RateLimit caps lookup requests per second.
	RateLimit int `envconfig:"CROSSREF_RATE_LIMIT" default:"10"`
}

// LoadConfig reads the configuration from the environment, honoring a
// .env file when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
