package config

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Port:            "8080",
		Mode:            "debug",
		LogLevel:        "info",
		Theme:           "dark",
		ScrollThreshold: 100,
		ViewIdleMinutes: 30,
		Database:        "folio.db",
		RetentionMonths: 12,
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Static: StaticConfig{
			Images: "./images",
			Assets: "./static",
		},
	}
}
