package config

import (
	"os"

	"github.com/go-yaml/yaml"

	"github.com/vitrineapp/vitrine/internal/domain"
)

type Config struct {
	Site   Site   `yaml:"site"`
	Server Server `yaml:"server"`
	Media  Media  `yaml:"media"`
}

type Site struct {
	FQDN              string `yaml:"fqdn"`
	OperatorTokenHash string `yaml:"operatorTokenHash"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	PageCacheTTL  int32  `yaml:"pageCacheTTL"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Media struct {
	// Parallelism bounds how many files of one upload batch normalize at
	// the same time.
	Parallelism int `yaml:"parallelism"`
}

func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Media.Parallelism <= 0 {
		config.Media.Parallelism = 4
	}

	return config, nil
}

// Domain extracts the site identity handed to services and handlers.
func (c Config) Domain() domain.Config {
	return domain.Config{
		FQDN:              c.Site.FQDN,
		OperatorTokenHash: c.Site.OperatorTokenHash,
	}
}
