package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate reports field errors under their YAML names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the result.
// Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and cross-field rules. It returns a joined
// error listing every failure.
func Validate(cfg *Config) error {
	var errs []error

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if cfg.Output.DurationsDir != "" && cfg.Output.DurationsDir == cfg.Output.AltDurationsDir {
		errs = append(errs, fmt.Errorf("output.durations_dir and output.alt_durations_dir must differ (both %q)", cfg.Output.DurationsDir))
	}
	if cfg.Cache.InMemory && cfg.Cache.Dir != "" {
		errs = append(errs, fmt.Errorf("cache.dir %q is ignored when cache.in_memory is set", cfg.Cache.Dir))
	}

	return errors.Join(errs...)
}

// fieldError renders a validator failure as "<yaml.path>: <rule>".
func fieldError(fe validator.FieldError) error {
	// Namespace is "Config.dataset.manifest"; drop the root type name.
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "oneof":
		return fmt.Errorf("%s %q is invalid; valid values: %s", path, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		if fe.Param() != "" {
			return fmt.Errorf("%s %v fails %s=%s", path, fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s %v fails %s", path, fe.Value(), fe.Tag())
	}
}
