package config

// MetricsConfig содержит настройки Prometheus.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"NOTES_METRICS_ENABLED" env-default:"true"`
	Path      string `yaml:"path" env:"NOTES_METRICS_PATH" env-default:"/metrics"`
	Namespace string `yaml:"namespace" env:"NOTES_METRICS_NAMESPACE" env-default:"notekeeper"`
}
