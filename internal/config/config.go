package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production       bool          `env:"PRODUCTION" envDefault:"false"`
	Port             string        `env:"PORT" envDefault:"80"`
	PostgresUrl      string        `env:"POSTGRES_URL,required"`
	RedisUrl         string        `env:"REDIS_URL" envDefault:"redis:6379"`
	SweepSchedule    string        `env:"SWEEP_SCHEDULE" envDefault:"@hourly"`
	SweepConcurrency int           `env:"SWEEP_CONCURRENCY" envDefault:"8"`
	LockTTL          time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	WeekStart        string        `env:"WEEK_START" envDefault:"monday"`
	DateFormat       string        `env:"DATE_FORMAT" envDefault:"01/02/2006"`
	PreviewItems     int           `env:"PREVIEW_ITEMS" envDefault:"5"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func SweepSchedule() string {
	return conf.SweepSchedule
}

func SweepConcurrency() int {
	return conf.SweepConcurrency
}

func LockTTL() time.Duration {
	return conf.LockTTL
}

// WeekStart returns the first day of the week for rendered rules. Anything
// other than "sunday" or "saturday" falls back to Monday.
func WeekStart() time.Weekday {
	switch conf.WeekStart {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

func DateFormat() string {
	return conf.DateFormat
}

func PreviewItems() int {
	return conf.PreviewItems
}
