package cmd

import (
	"fmt"
	"strconv"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/sequence"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel  string
	LogFormat string

	SequencePadding    int
	SequenceYearScoped bool

	StrandedScanCron   string
	StrandedScanMinAge time.Duration
	SystemUserID       kernel.ID
}

// ConfigFromLookup reads every setting through lookup, which returns "" for
// unset keys. Unset optional settings take their defaults.
func ConfigFromLookup(lookup func(key string) string) (Config, error) {
	cfg := Config{
		HTTPPort:           withDefault(lookup("HTTP_PORT"), "8080"),
		DBHost:             lookup("DB_HOST"),
		DBPort:             withDefault(lookup("DB_PORT"), "5432"),
		DBUser:             lookup("DB_USER"),
		DBPassword:         lookup("DB_PASSWORD"),
		DBName:             lookup("DB_NAME"),
		DBSslMode:          withDefault(lookup("DB_SSLMODE"), "disable"),
		LogLevel:           withDefault(lookup("LOG_LEVEL"), "INFO"),
		LogFormat:          withDefault(lookup("LOG_FORMAT"), "json"),
		SequencePadding:    sequence.DefaultScheme().Padding(),
		SequenceYearScoped: sequence.DefaultScheme().YearScoped(),
		StrandedScanCron:   withDefault(lookup("STRANDED_SCAN_CRON"), "0 */5 * * * *"),
		StrandedScanMinAge: 10 * time.Minute,
		SystemUserID:       1,
	}

	if raw := lookup("SEQUENCE_PADDING"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SEQUENCE_PADDING: %w", err)
		}
		cfg.SequencePadding = v
	}
	if raw := lookup("SEQUENCE_YEAR_SCOPED"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SEQUENCE_YEAR_SCOPED: %w", err)
		}
		cfg.SequenceYearScoped = v
	}
	if raw := lookup("STRANDED_SCAN_MIN_AGE"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("STRANDED_SCAN_MIN_AGE: %w", err)
		}
		cfg.StrandedScanMinAge = v
	}
	if raw := lookup("SYSTEM_USER_ID"); raw != "" {
		v, err := kernel.ParseID("SYSTEM_USER_ID", raw)
		if err != nil {
			return Config{}, err
		}
		cfg.SystemUserID = v
	}

	return cfg, nil
}

// DSN is the libpq keyword/value connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
