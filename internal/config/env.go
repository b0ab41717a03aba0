package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnv overrides every field carrying an `env` tag whose variable is set.
// All bad values are reported together, each named by its yaml path.
func applyEnv(cfg *Config) error {
	return applyEnvTo(reflect.ValueOf(cfg).Elem(), "")
}

func applyEnvTo(section reflect.Value, path string) error {
	var errs []error
	typ := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field, meta := section.Field(i), typ.Field(i)
		key := yamlKey(meta, path)

		if field.Kind() == reflect.Struct {
			errs = append(errs, applyEnvTo(field, key))
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setScalar(field, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s (from %s): %w", key, name, err))
		}
	}
	return errors.Join(errs...)
}

// setScalar covers the kinds Config uses: strings, ints and bools
func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%q is not an integer", raw)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%q is not a boolean", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}

func yamlKey(meta reflect.StructField, parent string) string {
	name, _, _ := strings.Cut(meta.Tag.Get("yaml"), ",")
	if name == "" {
		name = strings.ToLower(meta.Name)
	}
	if parent == "" {
		return name
	}
	return parent + "." + name
}
