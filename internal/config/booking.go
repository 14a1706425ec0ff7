package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// BookingConfig carries the booking business rules. It is loaded once at
// startup and handed to the reservation and commission services as explicit
// values, never read from globals at call time.
type BookingConfig struct {
	// CommissionRateBps is the referral commission rate in basis points
	// (2000 = 20%).
	CommissionRateBps int64 `mapstructure:"commissionRateBps"`
	// MaxResourcesPerReservation caps how many units one reservation may bind.
	MaxResourcesPerReservation int `mapstructure:"maxResourcesPerReservation"`
	// MaxLookaheadDays caps how far in the future a check-in may be.
	MaxLookaheadDays int `mapstructure:"maxLookaheadDays"`
}

func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		CommissionRateBps:          2000,
		MaxResourcesPerReservation: 4,
		MaxLookaheadDays:           365,
	}
}

// NewBookingConfig reads booking.yml when present and falls back to defaults.
func NewBookingConfig() (BookingConfig, error) {
	v := viper.New()

	v.SetConfigName("booking")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/lodgera/config")
	v.AddConfigPath("/etc/lodgera")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LODGERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBookingConfig()
	v.SetDefault("booking.commissionRateBps", defaults.CommissionRateBps)
	v.SetDefault("booking.maxResourcesPerReservation", defaults.MaxResourcesPerReservation)
	v.SetDefault("booking.maxLookaheadDays", defaults.MaxLookaheadDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return BookingConfig{}, err
		}
	}

	var cfg BookingConfig
	if err := v.UnmarshalKey("booking", &cfg); err != nil {
		return BookingConfig{}, err
	}
	if err := validateBookingConfig(cfg); err != nil {
		return BookingConfig{}, err
	}

	return cfg, nil
}

func validateBookingConfig(cfg BookingConfig) error {
	if cfg.CommissionRateBps < 0 || cfg.CommissionRateBps > 10000 {
		return errors.New("booking.commissionRateBps must be within [0, 10000]")
	}
	if cfg.MaxResourcesPerReservation < 1 {
		return errors.New("booking.maxResourcesPerReservation must be positive")
	}
	if cfg.MaxLookaheadDays < 1 {
		return errors.New("booking.maxLookaheadDays must be positive")
	}
	return nil
}
