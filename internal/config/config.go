package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Token          string
	GuildID        string
	DataFile       string
	DatabaseURL    string
	MigrationsPath string
	Port           string
	DefaultLocale  string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:          os.Getenv("TOKEN"),
		GuildID:        os.Getenv("GUILD_ID"),
		DataFile:       os.Getenv("DATA_FILE"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		Port:           os.Getenv("PORT"),
		DefaultLocale:  os.Getenv("DEFAULT_LOCALE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesPostgres indique si l'état est persisté en base plutôt qu'en fichier.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN est requis et ne peut pas être vide")
	}

	if strings.TrimSpace(c.DataFile) == "" {
		c.DataFile = "events_contests.json"
	}

	if strings.TrimSpace(c.DatabaseURL) != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}

	if strings.TrimSpace(c.Port) == "" {
		c.Port = "5000"
	}

	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "fr"
	}

	return nil
}
