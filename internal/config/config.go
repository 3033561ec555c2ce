package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

const (
	defaultSheetID = "1JqPBe5aQJDIGPNRs3zVCMUnIU6NDpf8dUXs1oJImNTg"
	defaultPort    = "8080"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Telegram struct {
		Token         string `yaml:"token"`
		ReplyInThread *bool  `yaml:"reply_in_thread"`
		PollTimeout   int    `yaml:"poll_timeout_seconds"`
	} `yaml:"telegram"`

	Gemini struct {
		APIKey      string `yaml:"api_key"`
		ModelName   string `yaml:"model_name"`
		RelaxSafety bool   `yaml:"relax_safety"`
	} `yaml:"gemini"`

	Store struct {
		Type            string `yaml:"type"` // "sheets" or "sqlite"
		SheetID         string `yaml:"sheet_id"`
		Range           string `yaml:"range"`
		CredentialsJSON string `yaml:"credentials_json"`
		SQLitePath      string `yaml:"sqlite_path"`
	} `yaml:"store"`

	// Notebook URLs keyed by source, e.g. "RULES"
	Notebooks map[string]string `yaml:"notebooks"`

	Logging struct {
		Development bool `yaml:"development"`
	} `yaml:"logging"`
}

// LoadConfig reads .env, then the YAML file, then environment overrides.
// Both files are optional; the bot can run from the environment alone.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	file, err := os.Open(configPath)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config.expandEnv()
	config.applyEnv()
	config.applyDefaults()

	return config, nil
}

func (c *Config) expandEnv() {
	c.Telegram.Token = os.ExpandEnv(c.Telegram.Token)
	c.Gemini.APIKey = os.ExpandEnv(c.Gemini.APIKey)
	c.Store.CredentialsJSON = os.ExpandEnv(c.Store.CredentialsJSON)
	c.Store.SheetID = os.ExpandEnv(c.Store.SheetID)
	for k, v := range c.Notebooks {
		c.Notebooks[k] = os.ExpandEnv(v)
	}
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Server.Port, "PORT")
	override(&c.Telegram.Token, "TELEGRAM_TOKEN")
	override(&c.Gemini.APIKey, "GEMINI_API_KEY")
	override(&c.Store.CredentialsJSON, "GOOGLE_DRIVE_CREDENTIALS")
	override(&c.Store.SheetID, "GOOGLE_SHEET_ID")

	for _, src := range models.Sources {
		if v := os.Getenv("NOTEBOOK_" + src.Key() + "_URL"); v != "" {
			if c.Notebooks == nil {
				c.Notebooks = map[string]string{}
			}
			c.Notebooks[src.Key()] = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Telegram.ReplyInThread == nil {
		on := true
		c.Telegram.ReplyInThread = &on
	}
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 60
	}
	if c.Gemini.ModelName == "" {
		c.Gemini.ModelName = "gemini-2.0-flash"
	}
	if c.Store.Type == "" {
		c.Store.Type = "sheets"
	}
	if c.Store.SheetID == "" {
		c.Store.SheetID = defaultSheetID
	}
	if c.Store.Range == "" {
		c.Store.Range = "Sheet1"
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "./data/log.db"
	}
}

// Links builds the read-only notebook table. Unset entries keep the
// shipped URL, so the table is always total.
func (c *Config) Links() models.LinkTable {
	links := models.DefaultLinks()
	for _, src := range models.Sources {
		if v := c.Notebooks[src.Key()]; v != "" {
			links[src] = v
		}
	}
	return links
}

// Validate lists missing secrets. Callers log them and keep running.
func (c *Config) Validate() []string {
	var missing []string
	if c.Telegram.Token == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Store.Type == "sheets" && c.Store.CredentialsJSON == "" {
		missing = append(missing, "GOOGLE_DRIVE_CREDENTIALS")
	}
	return missing
}
