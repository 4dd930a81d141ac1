package config

// UIConfig holds console presentation settings.
type UIConfig struct {
	// Color styles banners with ANSI colors when the terminal supports it.
	// Output to pipes and files is always plain.
	Color bool `yaml:"color"`
}
