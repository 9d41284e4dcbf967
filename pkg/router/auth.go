package router

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/saulvaldelvira/http-server/pkg/b64"
	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/urlenc"
)

// AuthConfig wraps handlers behind HTTP Basic authentication: a
// username/password table plus an optional allow-list of usernames.
// An empty allow-list means any user in the table may authenticate.
type AuthConfig struct {
	users        map[string]string
	requiredUsers []string
}

// NewAuthConfig returns an AuthConfig with no users, which rejects
// every set of credentials. AuthConfigFromList, AuthConfigFromFile and
// AuthConfigBuilder produce populated ones.
func NewAuthConfig() *AuthConfig {
	return &AuthConfig{users: make(map[string]string)}
}

// AuthConfigBuilder assembles an AuthConfig with an optional allow-list
// of required usernames.
type AuthConfigBuilder struct {
	cfg AuthConfig
}

// NewAuthConfigBuilder starts a builder from an existing user table
// (as produced by AuthConfigFromFile or AuthConfigFromList).
func NewAuthConfigBuilder(users map[string]string) *AuthConfigBuilder {
	return &AuthConfigBuilder{cfg: AuthConfig{users: users}}
}

// RequireUser adds user to the allow-list.
func (b *AuthConfigBuilder) RequireUser(user string) *AuthConfigBuilder {
	b.cfg.requiredUsers = append(b.cfg.requiredUsers, user)
	return b
}

// Build returns the assembled AuthConfig.
func (b *AuthConfigBuilder) Build() *AuthConfig {
	cfg := b.cfg
	return &cfg
}

// AuthConfigFromFile loads whitespace-separated "user password" pairs,
// one per line, from filename.
func AuthConfigFromFile(filename string) (*AuthConfig, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	users := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("router: malformed auth file %s", filename)
		}
		users[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &AuthConfig{users: users}, nil
}

// AuthConfigFromList builds an AuthConfig directly from (user, pass)
// pairs.
func AuthConfigFromList(pairs [][2]string) *AuthConfig {
	users := make(map[string]string, len(pairs))
	for _, p := range pairs {
		users[p[0]] = p[1]
	}
	return &AuthConfig{users: users}
}

// Apply wraps h so it only runs once the request presents valid Basic
// credentials for a user allowed by cfg. A missing Authorization
// header or a failed credential check responds 401 directly; an
// unrecognized auth scheme or malformed payload is surfaced as an
// error so the router logs it and responds 500, per its normal
// handler-error path.
func (cfg *AuthConfig) Apply(h Handler) Handler {
	return func(req *httpmsg.Request) error {
		auth, ok := req.Header("Authorization")
		if !ok {
			req.SetHeader("WWW-Authenticate", "Basic")
			return req.Unauthorized()
		}
		user, pass, err := parseBasicAuth(auth)
		if err != nil {
			return err
		}
		if cfg.check(user, pass) {
			return h(req)
		}
		return req.Unauthorized()
	}
}

func (cfg *AuthConfig) check(user, pass string) bool {
	if len(cfg.requiredUsers) > 0 {
		allowed := false
		for _, u := range cfg.requiredUsers {
			if u == user {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	want, ok := cfg.users[user]
	return ok && want == pass
}

func parseBasicAuth(header string) (user, pass string, err error) {
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != "Basic" {
		return "", "", fmt.Errorf("router: malformed Authorization header")
	}
	decoded, err := b64.Decode(fields[1])
	if err != nil {
		return "", "", err
	}
	rawUser, rawPass, _ := strings.Cut(string(decoded), ":")
	user, err = urlenc.Decode(rawUser)
	if err != nil {
		return "", "", err
	}
	pass, err = urlenc.Decode(rawPass)
	if err != nil {
		return "", "", err
	}
	return user, pass, nil
}
