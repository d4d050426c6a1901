// Package config holds the runtime settings of the bill maker: the
// letterhead printed on every bill, the custom typeface source, the default
// night rate and the persistence key of the employee directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"billmaker/services"
)

// Config is assembled from Default, then FromEnv, then command-line flags.
type Config struct {
	OrgName    string
	OrgAddress string

	// FontSource is a file path, an http(s) URL or "base64:<data>".
	FontSource  string
	FontTimeout time.Duration

	NightRate  int
	StorageKey string
	Seed       bool
}

func Default() Config {
	return Config{
		OrgName:     "SAMPLE TEXTILE MILLS LTD.",
		OrgAddress:  "Gazipur, Dhaka",
		FontSource:  "static/fonts/bill.ttf",
		FontTimeout: 5 * time.Second,
		NightRate:   services.DefaultNightRate,
		StorageKey:  services.DefaultStorageKey,
		Seed:        true,
	}
}

// FromEnv overrides c with any BILL_* environment variables that are set.
// Unparseable values are reported and leave the field unchanged.
func (c *Config) FromEnv() error {
	return c.fromLookup(os.LookupEnv)
}

func (c *Config) fromLookup(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup("BILL_ORG_NAME"); ok {
		c.OrgName = v
	}
	if v, ok := lookup("BILL_ORG_ADDRESS"); ok {
		c.OrgAddress = v
	}
	if v, ok := lookup("BILL_FONT"); ok {
		c.FontSource = v
	}
	if v, ok := lookup("BILL_FONT_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("BILL_FONT_TIMEOUT: %w", err))
		} else {
			c.FontTimeout = d
		}
	}
	if v, ok := lookup("BILL_NIGHT_RATE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("BILL_NIGHT_RATE: %w", err))
		} else {
			c.NightRate = n
		}
	}
	if v, ok := lookup("BILL_STORAGE_KEY"); ok {
		c.StorageKey = v
	}
	if v, ok := lookup("BILL_SEED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("BILL_SEED: %w", err))
		} else {
			c.Seed = b
		}
	}

	return errors.Join(errs...)
}

// BindFlags registers the settings on fs, using the current values as
// defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.OrgName, "org-name", c.OrgName, "organisation name printed on bills")
	fs.StringVar(&c.OrgAddress, "org-address", c.OrgAddress, "organisation address printed on bills")
	fs.StringVar(&c.FontSource, "font", c.FontSource, "bill typeface: file path, http(s) URL or base64:<data>")
	fs.DurationVar(&c.FontTimeout, "font-timeout", c.FontTimeout, "timeout for fetching a remote typeface")
	fs.IntVar(&c.NightRate, "night-rate", c.NightRate, "default night entertainment rate for non-labour staff")
	fs.StringVar(&c.StorageKey, "storage-key", c.StorageKey, "storage key of the employee directory")
	fs.BoolVar(&c.Seed, "seed", c.Seed, "write sample employees when the directory is empty")
}

func (c Config) Validate() error {
	var errs []error
	if c.NightRate < 0 {
		errs = append(errs, fmt.Errorf("night rate must not be negative, got %d", c.NightRate))
	}
	if c.FontTimeout <= 0 {
		errs = append(errs, fmt.Errorf("font timeout must be positive, got %s", c.FontTimeout))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage key must not be empty"))
	}
	return errors.Join(errs...)
}

func (c Config) Letterhead() services.Letterhead {
	return services.Letterhead{Name: c.OrgName, Address: c.OrgAddress}
}
