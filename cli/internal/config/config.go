package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds CLI-level settings shared by all commands. Schema-level
// settings live in the schema file itself.
type Config struct {
	SchemaPath   string
	OutputPath   string
	TemplatesDir string
	OnConflict   string
	Workers      int
}

// LoadConfig layers defaults, the .quickform config file, and QUICKFORM_*
// environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".quickform")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "quickform"))

	viper.SetEnvPrefix("QUICKFORM")
	viper.AutomaticEnv()

	viper.SetDefault("schema_path", "quickform.yaml")
	viper.SetDefault("output_path", "generated")
	viper.SetDefault("templates_dir", "")
	viper.SetDefault("on_conflict", "overwrite")
	viper.SetDefault("workers", 0)

	// Missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()

	// .env then .env.local, the latter winning.
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		SchemaPath:   viper.GetString("schema_path"),
		OutputPath:   viper.GetString("output_path"),
		TemplatesDir: viper.GetString("templates_dir"),
		OnConflict:   viper.GetString("on_conflict"),
		Workers:      viper.GetInt("workers"),
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.config/quickform/.quickform.yaml.
func SaveConfig(cfg *Config) error {
	viper.Set("schema_path", cfg.SchemaPath)
	viper.Set("output_path", cfg.OutputPath)
	viper.Set("templates_dir", cfg.TemplatesDir)
	viper.Set("on_conflict", cfg.OnConflict)
	viper.Set("workers", cfg.Workers)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "quickform")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(configPath, ".quickform.yaml")
	return viper.WriteConfigAs(configFile)
}
