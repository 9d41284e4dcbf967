package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/saulvaldelvira/http-server/pkg/logging"
)

// ErrHelpRequested is returned by ParseServerArgs when -h/--help or
// --license was given; callers should print the relevant text and
// exit 0, not treat it as a failure.
type ErrHelpRequested struct{ License bool }

func (e *ErrHelpRequested) Error() string {
	if e.License {
		return "license requested"
	}
	return "help requested"
}

// ArgError reports a CLI parsing failure: an unrecognized flag, or one
// missing/unable to parse its required argument.
type ArgError struct{ Msg string }

func (e *ArgError) Error() string { return e.Msg }

// ParseServerArgs builds a ServerConfig from defaults, an optional
// JSON config file (the default location, or one named by --conf,
// pre-scanned before the rest of the flags), and the command-line
// flags themselves. Flags override the config file; the config file
// overrides defaults.
func ParseServerArgs(args []string) (ServerConfig, error) {
	conf := DefaultServerConfig()

	confFile := defaultServerConfigPath()
	for i := 0; i < len(args); i++ {
		if args[i] == "--conf" && i+1 < len(args) {
			candidate := args[i+1]
			if _, err := os.Stat(candidate); err == nil {
				confFile = candidate
			} else {
				logging.Warnf("config path %q doesn't exist", candidate)
			}
		}
	}

	if confFile != "" {
		if _, err := os.Stat(confFile); err == nil {
			if err := applyServerConfigFile(&conf, confFile); err != nil {
				return conf, err
			}
		}
	}

	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(args) {
			return "", &ArgError{Msg: fmt.Sprintf("missing argument for %q", flag)}
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-p", "--port":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			port, err := strconv.ParseUint(v, 10, 16)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			conf.Port = uint16(port)

		case "-n", "-n-workers":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			n, err := strconv.ParseUint(v, 10, 16)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			conf.Pool.NWorkers = uint16(n)

		case "-d", "--dir":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			if err := os.Chdir(v); err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("could not change directory to %q: %v", v, err)}
			}

		case "-k", "--keep-alive":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			secs, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			conf.KeepAliveTimeout = time.Duration(secs * float64(time.Second))

		case "-r", "--keep-alive-requests":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			n, err := strconv.ParseUint(v, 10, 16)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			conf.KeepAliveRequests = uint16(n)

		case "-l", "--log":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.LogFile = v

		case "--log-level":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			n, err := strconv.ParseUint(v, 10, 8)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			level, err := logging.ParseLevel(uint8(n))
			if err != nil {
				return conf, err
			}
			conf.LogLevel = level

		case "--tls":
			conf.TLS.Enabled = true

		case "--cert-file":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.TLS.CertFile = v

		case "--private-key":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.TLS.PrivateKeyFile = v

		case "--conf":
			// Already consumed in the pre-scan above.
			i++

		case "--license":
			return conf, &ErrHelpRequested{License: true}

		case "-h", "--help":
			return conf, &ErrHelpRequested{}

		default:
			return conf, &ArgError{Msg: fmt.Sprintf("unknown argument: %s", arg)}
		}
	}

	return conf, nil
}

func defaultServerConfigPath() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "http-srv", "config.json")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "http-srv", "config.json")
	}
	return ""
}

// ServerHelpText is printed by -h/--help before exiting 0.
const ServerHelpText = `USAGE: http-server [-p <port>] [-n <n-workers>] [-d <working-dir>]
PARAMETERS:
    -p, --port <port>              TCP port to listen on
    -n, -n-workers <n>              Number of worker goroutines
    -d, --dir <working-dir>        Root directory of the server
    -k, --keep-alive <seconds>      Keep-alive budget (0 disables)
    -r, --keep-alive-requests <n>   Keep-alive request cap
    -l, --log <file>               Log file sink
    --log-level <0..3>              0=None 1=Error 2=Warn 3=Info
    --conf <file>                   Config file path
    --tls                          Enable TLS
    --cert-file <path>              TLS certificate file
    --private-key <path>            TLS private key file
    --license                       Print license and exit
    -h, --help                      Display this help message
EXAMPLES:
  http-server -p 8080 -d /var/html
  http-server -d ~/site -n 64 --keep-alive 120
  http-server --log /var/log/http-server.log`
