package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/portfolio/internal/flagx"
	"github.com/dmitrijs2005/portfolio/internal/timex"
)

// FileConfig is a DTO used exclusively for config file decoding. Durations
// use timex.Duration so files can say "15s" or integer nanoseconds.
// Only fields present in the file are applied.
type FileConfig struct {
	APIBaseURL     string          `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	Store          string          `json:"store" yaml:"store"`
	DataDir        string          `json:"data_dir" yaml:"data_dir"`
	DBFile         string          `json:"db_file" yaml:"db_file"`

	Redis *struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       *int   `json:"db" yaml:"db"`
		Prefix   string `json:"prefix" yaml:"prefix"`
	} `json:"redis" yaml:"redis"`

	Log *struct {
		Level  string `json:"level" yaml:"level"`
		Format string `json:"format" yaml:"format"`
		File   string `json:"file" yaml:"file"`
	} `json:"log" yaml:"log"`

	Media *struct {
		Bucket        string `json:"bucket" yaml:"bucket"`
		Region        string `json:"region" yaml:"region"`
		Endpoint      string `json:"endpoint" yaml:"endpoint"`
		PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
		AccessKey     string `json:"access_key" yaml:"access_key"`
		SecretKey     string `json:"secret_key" yaml:"secret_key"`
		UsePathStyle  *bool  `json:"use_path_style" yaml:"use_path_style"`
	} `json:"media" yaml:"media"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	setString(&cfg.Store, fc.Store)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBFile, fc.DBFile)

	if r := fc.Redis; r != nil {
		setString(&cfg.Redis.Addr, r.Addr)
		setString(&cfg.Redis.Password, r.Password)
		setString(&cfg.Redis.Prefix, r.Prefix)
		if r.DB != nil {
			cfg.Redis.DB = *r.DB
		}
	}

	if l := fc.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.Format, l.Format)
		setString(&cfg.Log.File, l.File)
	}

	if m := fc.Media; m != nil {
		setString(&cfg.Media.Bucket, m.Bucket)
		setString(&cfg.Media.Region, m.Region)
		setString(&cfg.Media.Endpoint, m.Endpoint)
		setString(&cfg.Media.PublicBaseURL, m.PublicBaseURL)
		setString(&cfg.Media.AccessKey, m.AccessKey)
		setString(&cfg.Media.SecretKey, m.SecretKey)
		if m.UsePathStyle != nil {
			cfg.Media.UsePathStyle = *m.UsePathStyle
		}
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
