package config

// Log configures the process logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0" validate:"oneof=-4 0 4 8 12"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=text json logfmt"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
	// File switches output from stderr to a rotated file.
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"10" validate:"gt=0"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"3" validate:"gte=0"`
}

// Ledger configures account numbering, ownership limits and event delivery.
type Ledger struct {
	FirstAccountNumber int64 `envconfig:"FIRST_ACCOUNT_NUMBER" default:"1001" validate:"gt=0"`
	MaxAccountsPerUser int   `envconfig:"MAX_ACCOUNTS_PER_USER" default:"2" validate:"gt=0"`
	EventMaxAttempts   int   `envconfig:"EVENT_MAX_ATTEMPTS" default:"3" validate:"gte=1"`
}

// Auth selects how passwords are stored and compared.
type Auth struct {
	Credentials string `envconfig:"CREDENTIALS" default:"plain" validate:"oneof=plain bcrypt"`
	BcryptCost  int    `envconfig:"BCRYPT_COST" default:"10" validate:"min=4,max=31"`
}

// App is the complete application configuration.
type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Log    *Log    `envconfig:"LOG" validate:"required"`
	Ledger *Ledger `envconfig:"LEDGER" validate:"required"`
	Auth   *Auth   `envconfig:"AUTH" validate:"required"`
}
