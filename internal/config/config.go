// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the standard locations.
const FileName = "heroctl.yaml"

// EnvPath names an explicit config file and overrides the standard locations.
const EnvPath = "HEROCTL_CFG"

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

func init() {
	_, _ = Load()
}

// Load reads the config file into Config. An explicit path wins over
// HEROCTL_CFG, which wins over the standard locations.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	var err error

	if len(cfgFilePath) == 1 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else if path, err = getConfigPath(); err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data}

	return Config, nil
}

// get traverses the map using a dotted key path. When a namespace is set the
// namespaced key is tried first.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, k := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[k]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

// lookup lazily loads the config and resolves key against it.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	return Config.get(key)
}

func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("value is not a bool: %w", err)
		}
		return b, nil
	default:
		return false, errors.New("value is not a bool")
	}
}

// GetStringSlice returns a YAML list of scalars as strings. A single scalar is
// treated as a one element list.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	case string:
		return []string{v}, nil
	default:
		return nil, errors.New("value is not a list")
	}
}

// GetDuration accepts either a Go duration string ("45s", "1m") or a bare
// number of seconds.
func GetDuration(key string, defaultValue ...time.Duration) (time.Duration, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("value is not a duration: %w", err)
		}
		return d, nil
	default:
		return 0, errors.New("value is not a duration")
	}
}

func getConfigPath() (string, error) {
	if env := os.Getenv(EnvPath); env != "" {
		fileInfo, err := os.Stat(env)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s=%s", EnvPath, env)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvPath, env)
		}
		log.Debugf("using config file: %s", env)
		return env, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
