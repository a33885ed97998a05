// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// GlobalFlagsValidator checks the root flags that every subcommand relies on.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.IsSet("timeout") {
		if err := FlagValidators(c.Duration("timeout").Seconds(), NonNegativeValidator); err != nil {
			return fmt.Errorf("--timeout %w", err)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func MustBeTrueValidator(value any) error {
	if !value.(bool) {
		return errors.New("must be true")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// PositiveValidator requires an integer of at least 1.
func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

// MaxCount bounds --count.
const MaxCount = 1000

// MaxCountValidator rejects integers above MaxCount.
func MaxCountValidator(value any) error {
	if n, ok := value.(int); ok && n > MaxCount {
		return fmt.Errorf("must be at most %d", MaxCount)
	}
	return nil
}

// NonNegativeValidator rejects negative numbers. Zero is allowed.
func NonNegativeValidator(value any) error {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return errors.New("must not be negative")
		}
	case float64:
		if v < 0 {
			return errors.New("must not be negative")
		}
	default:
		return fmt.Errorf("unexpected type %T", value)
	}
	return nil
}
