// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		if cfg.Auth.TokenStore == TokenStoreRedis && cfg.Redis.Addr == "" {
			sl.ReportError(cfg.Redis.Addr, "redis.addr", "Addr", "required_for_redis_store", "")
		}
	}, Config{})
	return v
}

// Validate checks cfg against its struct tags. The error names every
// offending key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	keys := make([]string, 0, len(fieldErrs))
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		keys = append(keys, key)
		if fe.Param() != "" {
			problems = append(problems, key+" failed "+fe.Tag()+"="+fe.Param())
		} else {
			problems = append(problems, key+" failed "+fe.Tag())
		}
	}
	return oops.Code("CONFIG_INVALID").
		With("keys", keys).
		Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
