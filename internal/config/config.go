package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Env     string `yaml:"env" env:"ENV" env-default:"local"`
	Backend struct {
		BaseURL     string            `yaml:"base_url" env:"BACKEND_URL" env-default:"https://adminapi.hayatplus.online"`
		MediaOrigin string            `yaml:"media_origin" env:"MEDIA_ORIGIN" env-default:"http://codingcloud.pythonanywhere.com"`
		Origins     map[string]string `yaml:"origins"`
		Timeout     time.Duration     `yaml:"timeout" env-default:"15s"`
	} `yaml:"backend"`
	Defaults struct {
		CounsellorSchool    int64 `yaml:"counsellor_school" env-default:"69"`
		TestimonialCategory int64 `yaml:"testimonial_category" env-default:"44"`
	} `yaml:"defaults"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"hayat_admin"`
	} `yaml:"mongo"`
	Listen struct {
		BindIP  string        `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string        `yaml:"port" env-default:"9100"`
		Timeout time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"listen"`
}

// CodingCloudOrigin serves banners, courses, testimonials and their media.
const CodingCloudOrigin = "http://codingcloud.pythonanywhere.com"

var defaultOrigins = map[string]string{
	"banner":      CodingCloudOrigin,
	"course":      CodingCloudOrigin,
	"testimonial": CodingCloudOrigin,
}

// ResourceOrigins maps resource names to the origin serving them. Resources
// missing from the map use Backend.BaseURL.
func (c *Config) ResourceOrigins() map[string]string {
	origins := make(map[string]string, len(defaultOrigins)+len(c.Backend.Origins))
	for name, origin := range defaultOrigins {
		origins[name] = origin
	}
	for name, origin := range c.Backend.Origins {
		name = strings.ToLower(strings.TrimSpace(name))
		if origin == "" {
			delete(origins, name)
			continue
		}
		origins[name] = origin
	}
	return origins
}

// MediaURL is the origin uploaded files are served from. A config built without
// defaults falls back to the API origin.
func (c *Config) MediaURL() string {
	if c.Backend.MediaOrigin != "" {
		return c.Backend.MediaOrigin
	}
	return c.Backend.BaseURL
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads the configuration without the process-wide singleton.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return conf, nil
}

// FromEnv builds the configuration from defaults and environment variables only.
func FromEnv() (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return conf, nil
}
