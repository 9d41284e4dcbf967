package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/saulvaldelvira/http-server/pkg/logging"
)

// ConfigFileError is returned when a JSON config file names a key
// with a value of the wrong kind, e.g. a string where a number was
// expected. Unknown keys are not an error: they're logged as
// warnings and otherwise ignored.
type ConfigFileError struct {
	Path string
	Kind string
	Key  string
}

func (e *ConfigFileError) Error() string {
	return fmt.Sprintf("Parsing config file (%s): Expected %s for %q", e.Path, e.Kind, e.Key)
}

func applyServerConfigFile(conf *ServerConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	logging.Infof("parsing config file: %s", path)

	num := func(key string, v any) (float64, error) {
		n, ok := v.(float64)
		if !ok {
			return 0, &ConfigFileError{Path: path, Kind: "number", Key: key}
		}
		return n, nil
	}
	str := func(key string, v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", &ConfigFileError{Path: path, Kind: "string", Key: key}
		}
		return s, nil
	}

	for key, v := range doc {
		switch key {
		case "port":
			n, err := num(key, v)
			if err != nil {
				return err
			}
			conf.Port = uint16(n)

		case "root_dir":
			s, err := str(key, v)
			if err != nil {
				return err
			}
			if home := os.Getenv("HOME"); home != "" {
				s = strings.Replace(s, "~", home, 1)
			}
			if err := os.Chdir(s); err != nil {
				return fmt.Errorf("changing to root_dir %q: %w", s, err)
			}

		case "keep_alive_timeout":
			n, err := num(key, v)
			if err != nil {
				return err
			}
			conf.KeepAliveTimeout = time.Duration(n * float64(time.Second))

		case "keep_alive_requests":
			n, err := num(key, v)
			if err != nil {
				return err
			}
			conf.KeepAliveRequests = uint16(n)

		case "log_file":
			s, err := str(key, v)
			if err != nil {
				return err
			}
			conf.LogFile = s

		case "log_level":
			n, err := num(key, v)
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(uint8(n))
			if err != nil {
				return err
			}
			conf.LogLevel = level

		case "pool_config":
			obj, ok := v.(map[string]any)
			if !ok {
				return &ConfigFileError{Path: path, Kind: "object", Key: key}
			}
			for pk, pv := range obj {
				switch pk {
				case "n_workers":
					n, err := num(pk, pv)
					if err != nil {
						return err
					}
					conf.Pool.NWorkers = uint16(n)
				case "pending_buffer_size":
					n, err := num(pk, pv)
					if err != nil {
						return err
					}
					conf.Pool.PendingBufferSize = uint16(n)
				default:
					logging.Warnf("parsing config file (%s): unexpected key %q", path, pk)
				}
			}

		case "tls":
			obj, ok := v.(map[string]any)
			if !ok {
				return &ConfigFileError{Path: path, Kind: "object", Key: key}
			}
			for tk, tv := range obj {
				switch tk {
				case "enabled":
					b, ok := tv.(bool)
					if !ok {
						return &ConfigFileError{Path: path, Kind: "bool", Key: tk}
					}
					conf.TLS.Enabled = b
				case "cert_file":
					s, err := str(tk, tv)
					if err != nil {
						return err
					}
					conf.TLS.CertFile = s
				case "private_key":
					s, err := str(tk, tv)
					if err != nil {
						return err
					}
					conf.TLS.PrivateKeyFile = s
				default:
					logging.Warnf("parsing config file (%s): unexpected key %q", path, tk)
				}
			}

		default:
			logging.Warnf("parsing config file (%s): unexpected key %q", path, key)
		}
	}

	return nil
}
