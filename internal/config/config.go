// Package config carga la configuración del proceso: un archivo YAML
// opcional (CONFIG_PATH) con overrides por variables de entorno. Sin
// archivo y sin env el servicio levanta igual con defaults de dev.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Listen es la dirección HTTP, ej. ":8080".
	Listen string `yaml:"listen"`

	// DBDSN apunta a Postgres. Si está vacío se usa sqlite.
	DBDSN string `yaml:"db_dsn"`

	// SQLitePath es el archivo de base local. Vacío = in-memory.
	SQLitePath string `yaml:"sqlite_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Listen: ":8080",
	}
}

// Load lee CONFIG_PATH si existe y aplica los overrides de entorno
// (PORT, DB_DSN, SQLITE_PATH, LOG_LEVEL, LOG_FORMAT). Un archivo
// ausente no es error; uno ilegible sí.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: seguimos con defaults + env
		case err != nil:
			return Config{}, err
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Listen = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg, nil
}
