package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Targets  Targets  `json:"targets" mapstructure:"targets"`
	// Password is the plaintext seeded for every generated account.
	Password string `json:"password" mapstructure:"password"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Targets holds the row counts each stage aims for. Child counts for
// chapters and lessons are totals across all parents; the per-parent range is
// derived at generation time.
type Targets struct {
	Students              int `json:"students" mapstructure:"students"`
	Instructors           int `json:"instructors" mapstructure:"instructors"`
	Categories            int `json:"categories" mapstructure:"categories"`
	Courses               int `json:"courses" mapstructure:"courses"`
	Chapters              int `json:"chapters" mapstructure:"chapters"`
	Lessons               int `json:"lessons" mapstructure:"lessons"`
	Ratings               int `json:"ratings" mapstructure:"ratings"`
	MinEnrollmentsPerUser int `json:"min_enrollments_per_user" mapstructure:"min_enrollments_per_user"`
	MaxEnrollmentsPerUser int `json:"max_enrollments_per_user" mapstructure:"max_enrollments_per_user"`
}

// profile mirrors Targets with pointer fields so a YAML profile can override
// only the counts it names.
type profile struct {
	Students              *int `yaml:"students"`
	Instructors           *int `yaml:"instructors"`
	Categories            *int `yaml:"categories"`
	Courses               *int `yaml:"courses"`
	Chapters              *int `yaml:"chapters"`
	Lessons               *int `yaml:"lessons"`
	Ratings               *int `yaml:"ratings"`
	MinEnrollmentsPerUser *int `yaml:"min_enrollments_per_user"`
	MaxEnrollmentsPerUser *int `yaml:"max_enrollments_per_user"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "mysql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Password == "" {
		cfg.Password = "changeme123"
	}
	t := &cfg.Targets
	setDefault(&t.Students, 10)
	setDefault(&t.Instructors, 10)
	setDefault(&t.Categories, 50)
	setDefault(&t.Courses, 50)
	setDefault(&t.Chapters, 50)
	setDefault(&t.Lessons, 50)
	setDefault(&t.Ratings, 200)
	setDefault(&t.MinEnrollmentsPerUser, 2)
	setDefault(&t.MaxEnrollmentsPerUser, 8)

	return &cfg, nil
}

func setDefault(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}

// ApplyProfile overlays the counts from a YAML profile file onto the loaded
// targets. Fields the profile omits keep their configured values.
func (c *Config) ApplyProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	overlay(&c.Targets.Students, p.Students)
	overlay(&c.Targets.Instructors, p.Instructors)
	overlay(&c.Targets.Categories, p.Categories)
	overlay(&c.Targets.Courses, p.Courses)
	overlay(&c.Targets.Chapters, p.Chapters)
	overlay(&c.Targets.Lessons, p.Lessons)
	overlay(&c.Targets.Ratings, p.Ratings)
	overlay(&c.Targets.MinEnrollmentsPerUser, p.MinEnrollmentsPerUser)
	overlay(&c.Targets.MaxEnrollmentsPerUser, p.MaxEnrollmentsPerUser)

	return nil
}

func overlay(field *int, value *int) {
	if value != nil {
		*field = *value
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	t := c.Targets
	counts := map[string]int{
		"students":    t.Students,
		"instructors": t.Instructors,
		"categories":  t.Categories,
		"courses":     t.Courses,
		"chapters":    t.Chapters,
		"lessons":     t.Lessons,
		"ratings":     t.Ratings,
	}
	for name, count := range counts {
		if count < 0 {
			return fmt.Errorf("targets.%s cannot be negative", name)
		}
	}

	if t.MinEnrollmentsPerUser < 0 {
		return fmt.Errorf("targets.min_enrollments_per_user cannot be negative")
	}
	if t.MaxEnrollmentsPerUser < t.MinEnrollmentsPerUser {
		return fmt.Errorf("targets.max_enrollments_per_user (%d) cannot be below targets.min_enrollments_per_user (%d)",
			t.MaxEnrollmentsPerUser, t.MinEnrollmentsPerUser)
	}

	return nil
}
