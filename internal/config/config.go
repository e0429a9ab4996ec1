package config

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every setting the binaries read. Nothing else in the module
// reads the environment directly.
type Config struct {
	AppEnv              string `env:"APP_ENV,default=dev"`
	AppName             string `env:"APP_NAME,default=resto_manager"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI,default=/metrics"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=5s"`
	HttpCORSOrigin     string        `env:"HTTP_CORS_ORIGIN,default=*"`

	StoreDSN   string `env:"STORE_DSN,default=resto-manager.db"`
	StoreDebug bool   `env:"STORE_DEBUG"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX,default=resto:"`

	PromNamespace string `env:"PROM_NAMESPACE,default=resto"`

	OfflineEnabled         bool          `env:"OFFLINE_ENABLED,default=true"`
	OfflineCacheName       string        `env:"OFFLINE_CACHE_NAME,default=resto-manager-v2"`
	OfflineOriginURL       string        `env:"OFFLINE_ORIGIN_URL,default=http://127.0.0.1:5173/"`
	OfflineManifest        string        `env:"OFFLINE_MANIFEST,default=./;./index.html;./manifest.json;./sw.js"`
	OfflineFallback        string        `env:"OFFLINE_FALLBACK,default=./index.html"`
	OfflineExcludedSchemes string        `env:"OFFLINE_EXCLUDED_SCHEMES,default=chrome-extension"`
	OfflineFetchTimeout    time.Duration `env:"OFFLINE_FETCH_TIMEOUT,default=4s"`

	TelegramAPIURL    string        `env:"TELEGRAM_API_URL,default=https://api.telegram.org"`
	TelegramTimeout   time.Duration `env:"TELEGRAM_TIMEOUT,default=10s"`
	NetworkProbeAddr  string        `env:"NETWORK_PROBE_ADDR,default=api.telegram.org:443"`
	NetworkProbeAfter time.Duration `env:"NETWORK_PROBE_TIMEOUT,default=2s"`

	NotifyWorkers    int    `env:"NOTIFY_WORKERS,default=2"`
	NotifyBufferSize int    `env:"NOTIFY_BUFFER_SIZE,default=64"`
	NotifyTimezone   string `env:"NOTIFY_TIMEZONE,default=Asia/Tashkent"`
}

// validate checks settings that depend on each other. An asset fetch must
// give up before the request timeout fires so the cached fallback can answer.
func (c *Config) validate() error {
	if c.OfflineEnabled && c.HttpRequestTimeout > 0 && c.OfflineFetchTimeout >= c.HttpRequestTimeout {
		return errors.Errorf("OFFLINE_FETCH_TIMEOUT (%s) must be below HTTP_REQUEST_TIMEOUT (%s)",
			c.OfflineFetchTimeout, c.HttpRequestTimeout)
	}
	return nil
}

// Manifest returns the static paths precached on install.
func (c *Config) Manifest() []string {
	return splitList(c.OfflineManifest)
}

func (c *Config) ExcludedSchemes() []string {
	return splitList(c.OfflineExcludedSchemes)
}

// Location is the zone reservation times are read and displayed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.NotifyTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown timezone %s", c.NotifyTimezone)
	}
	return loc, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}
	if err := c.validate(); err != nil {
		return err
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
