package config

// Config is the server configuration, corresponding to folio.yml.
type Config struct {
	Port            string       `yaml:"port" koanf:"port"`
	Mode            string       `yaml:"mode" koanf:"mode"`
	LogLevel        string       `yaml:"log_level" koanf:"log_level"`
	ContentFile     string       `yaml:"content_file" koanf:"content_file"`
	WatchContent    bool         `yaml:"watch_content" koanf:"watch_content"`
	Theme           string       `yaml:"theme" koanf:"theme"`
	ScrollThreshold float64      `yaml:"scroll_threshold" koanf:"scroll_threshold"`
	ViewIdleMinutes int          `yaml:"view_idle_minutes" koanf:"view_idle_minutes"`
	Database        string       `yaml:"database" koanf:"database"`
	RetentionMonths int          `yaml:"retention_months" koanf:"retention_months"`
	Admin           AdminConfig  `yaml:"admin" koanf:"admin"`
	SMTP            SMTPConfig   `yaml:"smtp" koanf:"smtp"`
	Static          StaticConfig `yaml:"static" koanf:"static"`
}

// AdminConfig holds the admin dashboard credentials.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// SMTPConfig is the outgoing mail server for the contact form.
type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}

// StaticConfig names the directories served as-is.
type StaticConfig struct {
	Images string `yaml:"images" koanf:"images"`
	Assets string `yaml:"assets" koanf:"assets"`
}
