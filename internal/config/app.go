package config

const defaultCurrencySymbol = "₹"

type AppConfig struct {
	Currency string `yaml:"currency-symbol"`
}

func (s *AppConfig) CurrencySymbol() string {
	if s.Currency == "" {
		return defaultCurrencySymbol
	}
	return s.Currency
}
