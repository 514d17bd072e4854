package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/shop0/internal/apperr"
	"github.com/garrettladley/shop0/internal/validator"
	"github.com/garrettladley/shop0/internal/xslog"
)

type Config struct {
	APIKey          string      `env:"SHOP0_API_KEY"`
	APISecretKey    string      `env:"SHOP0_API_SECRET_KEY"`
	HostName        string      `env:"SHOP0_HOST_NAME"`
	APIVersion      APIVersion  `env:"SHOP0_API_VERSION" envDefault:"unstable"`
	IsPrivateApp    bool        `env:"SHOP0_IS_PRIVATE_APP"`
	IsEmbeddedApp   bool        `env:"SHOP0_IS_EMBEDDED_APP" envDefault:"true"`
	UserAgentPrefix string      `env:"SHOP0_USER_AGENT_PREFIX"`
	LogFile         string      `env:"SHOP0_LOG_FILE"`
	LogLevel        xslog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Port            string      `env:"PORT" envDefault:"8080"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var _ validator.Validator = Config{}

func (c Config) Validate() map[string]string {
	errs := make(map[string]string)
	if c.APIKey == "" {
		errs["SHOP0_API_KEY"] = "required"
	}
	if c.APISecretKey == "" {
		errs["SHOP0_API_SECRET_KEY"] = "required"
	}
	if c.HostName == "" {
		errs["SHOP0_HOST_NAME"] = "required"
	}
	if !c.APIVersion.Known() {
		errs["SHOP0_API_VERSION"] = "unknown api version " + string(c.APIVersion)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AccessTokenFor resolves the credential sent to the admin API. Private apps
// authenticate with the shared secret; everyone else must supply a token.
func (c Config) AccessTokenFor(accessToken string) (string, error) {
	if c.IsPrivateApp {
		return c.APISecretKey, nil
	}
	if accessToken == "" {
		return "", apperr.InvalidConfiguration("missing access token for non-private app")
	}
	return accessToken, nil
}
