package config

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Herald is the complete daemon configuration.
type Herald struct {
	Options
	Profile Profile
}

// Load parses args (including the program name), reads the profile and validates both.
// go-flags errors such as --help are returned unwrapped.
func Load(args []string) (Herald, error) {
	var opts Options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		return Herald{}, err
	}

	profile, err := LoadProfile(opts.Profile)
	if err != nil {
		return Herald{}, err
	}

	cfg := Herald{Options: opts, Profile: profile}
	if err = cfg.Validate(); err != nil {
		return Herald{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Herald) Validate() error {
	var errs []error
	if err := validateStruct(c.Options); err != nil {
		errs = append(errs, err)
	}
	if err := validateStruct(c.Profile); err != nil {
		errs = append(errs, err)
	}
	if !c.TelegramEnabled() && !c.NATSEnabled() {
		errs = append(errs, errors.Join(ErrInvalidConfig, errors.New("no delivery transport: set a Telegram token or a NATS URL")))
	}
	if len(errs) > 0 {
		return fmt.Errorf("validate config: %w", errors.Join(errs...))
	}
	return nil
}
