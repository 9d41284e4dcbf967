package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
)

// OutputMode tells the client binary where to write a response body.
type OutputMode uint8

const (
	// OutputStdout streams the body to standard output.
	OutputStdout OutputMode = iota
	// OutputFile writes the body to ClientConfig.OutFile.
	OutputFile
	// OutputFromURL derives the filename from the request URL's last
	// path segment (falling back to the host name if it's empty).
	OutputFromURL
)

// ClientConfig holds every setting the http-client binary accepts.
type ClientConfig struct {
	URL       string
	Method    httpmsg.Method
	Host      string
	Port      uint16
	UserAgent string
	Output    OutputMode
	OutFile   string
}

// DefaultClientConfig matches the original implementation's defaults:
// method GET, port 80, user agent "http-client", output to stdout.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Method:    httpmsg.MethodGET,
		Port:      80,
		UserAgent: "http-client",
		Output:    OutputStdout,
	}
}

// ClientHelpText is printed by -h/--help before exiting 0.
const ClientHelpText = `USAGE: http-client [OPTIONS] <url>
PARAMETERS:
    -m, --method <method>   HTTP method to use (default GET)
    --host <host>           Override the request Host header
    -a, --user-agent <ua>   Override the User-Agent header
    -O                      Save the body under a name derived from the URL
    -o <path>               Save the body to <path>
    --license               Print license and exit
    -h, --help              Display this help message
EXAMPLES:
  http-client http://localhost:8080/index.html
  http-client -m POST --host example.com /upload
  http-client -o out.bin http://localhost/file.bin`

// ParseClientArgs builds a ClientConfig from defaults and the given
// command-line flags. The single non-flag argument is the target
// URL; everything after a recognized host[:port] prefix becomes the
// request path.
func ParseClientArgs(args []string) (ClientConfig, error) {
	conf := DefaultClientConfig()

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
		case "-m", "--method":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			method, err := httpmsg.ParseMethod(v)
			if err != nil {
				return conf, &ArgError{Msg: fmt.Sprintf("invalid argument for %q: %q", arg, v)}
			}
			conf.Method = method

		case "--host":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.Host = v

		case "-a", "--user-agent":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.UserAgent = v

		case "-O":
			conf.Output = OutputFromURL

		case "-o":
			v, err := next(arg)
			if err != nil {
				return conf, err
			}
			conf.Output = OutputFile
			conf.OutFile = v

		case "--license":
			return conf, &ErrHelpRequested{License: true}

		case "-h", "--help":
			return conf, &ErrHelpRequested{}

		default:
			conf.URL = arg
		}
	}

	if err := splitHostURL(&conf); err != nil {
		return conf, err
	}

	return conf, nil
}

// splitHostURL pulls the host (and optional port) out of conf.URL,
// leaving conf.URL holding only the request path, defaulting to "/".
// An explicit --host flag (conf.Host already set) wins over whatever
// host the URL names.
func splitHostURL(conf *ClientConfig) error {
	explicitHost := conf.Host

	host := strings.TrimPrefix(conf.URL, "http://")
	host = strings.TrimPrefix(host, "https://")

	path := "/"
	if idx := strings.IndexByte(host, '/'); idx >= 0 {
		path = host[idx:]
		host = host[:idx]
	}

	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		port, err := strconv.ParseUint(host[idx+1:], 10, 16)
		if err != nil {
			return &ArgError{Msg: fmt.Sprintf("invalid port in url: %q", conf.URL)}
		}
		conf.Port = uint16(port)
		host = host[:idx]
	}

	if explicitHost != "" {
		host = explicitHost
	}
	if host == "" {
		return &ArgError{Msg: "missing host"}
	}

	conf.Host = host
	conf.URL = path
	return nil
}
