package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

const dateLayout = "2006-01-02"

type Config struct {
	LogLevel    string `json:"log_level" validate:"oneof=debug info warn error"`
	LogEncoding string `json:"log_encoding" validate:"oneof=json console"`

	Format string `json:"format" validate:"oneof=json ics"`
	Indent bool   `json:"indent"`

	WeekOneStart string `json:"week_one_start" validate:"omitempty,datetime=2006-01-02"`
	Timezone     string `json:"timezone" validate:"required,timezone"`
	CalendarName string `json:"calendar_name"`
	MaxWeek      int    `json:"max_week" validate:"min=1,max=53"`

	GithubToken string `json:"github_token"`
	GithubRepo  string `json:"github_repo" validate:"omitempty,contains=/"`
	GithubPath  string `json:"github_path"`

	GoogleCredentialsFile string `json:"google_credentials_file"`
	GoogleTokenFile       string `json:"google_token_file"`
	GoogleCalendarID      string `json:"google_calendar_id"`
}

// Default returns the settings used when neither a file nor the environment sets a value.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		LogEncoding:      "console",
		Format:           "json",
		Indent:           true,
		Timezone:         "Europe/London",
		CalendarName:     "Timetable",
		MaxWeek:          53,
		GoogleTokenFile:  "token.json",
		GoogleCalendarID: "primary",
	}
}

// LoadConfig reads filename over the defaults (an empty filename skips the file),
// applies environment overrides and validates the result.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	cfg.applyEnv()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnvString("TIMETABLE_LOG_LEVEL", c.LogLevel)
	c.LogEncoding = getEnvString("TIMETABLE_LOG_ENCODING", c.LogEncoding)
	c.Format = getEnvString("TIMETABLE_FORMAT", c.Format)
	c.Indent = getEnvBool("TIMETABLE_INDENT", c.Indent)
	c.WeekOneStart = getEnvString("TIMETABLE_WEEK_ONE_START", c.WeekOneStart)
	c.Timezone = getEnvString("TIMETABLE_TIMEZONE", c.Timezone)
	c.CalendarName = getEnvString("TIMETABLE_CALENDAR_NAME", c.CalendarName)
	c.MaxWeek = getEnvInt("TIMETABLE_MAX_WEEK", c.MaxWeek)
	c.GithubToken = getEnvString("GITHUB_TOKEN", c.GithubToken)
	c.GithubRepo = getEnvString("GITHUB_REPO", c.GithubRepo)
	c.GithubPath = getEnvString("GITHUB_PATH", c.GithubPath)
	c.GoogleCredentialsFile = getEnvString("GOOGLE_CREDENTIALS_FILE", c.GoogleCredentialsFile)
	c.GoogleTokenFile = getEnvString("GOOGLE_TOKEN_FILE", c.GoogleTokenFile)
	c.GoogleCalendarID = getEnvString("GOOGLE_CALENDAR_ID", c.GoogleCalendarID)
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// WeekOne returns midnight of week_one_start in the configured zone.
func (c *Config) WeekOne() (time.Time, error) {
	if c.WeekOneStart == "" {
		return time.Time{}, errors.New("week_one_start is required for calendar output")
	}
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(dateLayout, c.WeekOneStart, loc)
}

// CheckUpload reports missing GitHub settings.
func (c *Config) CheckUpload() error {
	if c.GithubToken == "" || c.GithubRepo == "" || c.GithubPath == "" {
		return errors.New("github_token, github_repo and github_path are required for upload")
	}
	return nil
}

// CheckGoogle reports missing Google API credentials.
func (c *Config) CheckGoogle() error {
	if c.GoogleCredentialsFile == "" {
		return errors.New("google_credentials_file is required for sync")
	}
	return nil
}

// CheckSync reports missing settings for syncing a scraped timetable.
func (c *Config) CheckSync() error {
	if err := c.CheckGoogle(); err != nil {
		return err
	}
	_, err := c.WeekOne()
	return err
}
