package config

type BackendConfig struct {
	URL         string `yaml:"base-url"`
	TimeoutSecs int64  `yaml:"timeout-seconds"`
}

func (s *BackendConfig) BaseURL() string {
	return s.URL
}

func (s *BackendConfig) TimeoutSeconds() int64 {
	return s.TimeoutSecs
}
