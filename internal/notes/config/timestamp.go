package config

import (
	"notekeeper/pkg/timefmt"
)

// TimestampConfig задает формат меток времени в ответах.
type TimestampConfig struct {
	Layout   string `yaml:"layout" env:"NOTES_TIMESTAMP_LAYOUT" env-default:"01-02-2006 03:04:05"`
	Timezone string `yaml:"timezone" env:"NOTES_TIMEZONE" env-default:"America/New_York"`
}

// Formatter строит timefmt.Formatter по настройкам.
func (c *TimestampConfig) Formatter() (*timefmt.Formatter, error) {
	return timefmt.New(c.Layout, c.Timezone) //nolint:wrapcheck
}
