package cmd

import (
	"fmt"

	"github.com/dafibh/zerobudget/internal/config"
	"github.com/spf13/viper"
)

// profile is an optional budgetctl settings file (TOML, YAML or JSON by
// extension). Non-empty values override the environment.
type profile struct {
	Output         string `mapstructure:"output"`
	StorageBackend string `mapstructure:"storage_backend"`
	DataFile       string `mapstructure:"data_file"`
	DatabaseURL    string `mapstructure:"database_url"`
	S3             struct {
		Region   string `mapstructure:"region"`
		Bucket   string `mapstructure:"bucket"`
		Key      string `mapstructure:"key"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"s3"`
}

func loadProfile(path string) (*profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("output", outputTable)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var p profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &p, nil
}

// apply overrides the storage settings of cfg
func (p *profile) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StorageBackend, p.StorageBackend)
	set(&cfg.DataFile, p.DataFile)
	set(&cfg.DatabaseURL, p.DatabaseURL)
	set(&cfg.S3.Region, p.S3.Region)
	set(&cfg.S3.Bucket, p.S3.Bucket)
	set(&cfg.S3.Key, p.S3.Key)
	set(&cfg.S3.Endpoint, p.S3.Endpoint)
}
