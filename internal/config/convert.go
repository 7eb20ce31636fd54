package config

import (
	"strings"

	"github.com/danmuck/shippoctl/internal/auth"
	"github.com/danmuck/shippoctl/internal/mockapi"
	"github.com/danmuck/shippoctl/internal/transport"
)

// Transport maps the client config onto transport settings. The token is
// passed in because it may come from outside the config file.
func (c ClientConfig) Transport(token string) (transport.Config, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return transport.Config{}, err
	}
	out := transport.DefaultConfig()
	out.BaseURL = c.BaseURL
	out.Token = token
	out.Timeout = timeout
	if c.UserAgent != "" {
		out.UserAgent = c.UserAgent
	}
	return out, nil
}

// Server maps the mock config onto server settings. When tokens is set the
// server accepts token and every entry of tokens.
func (c MockConfig) Server() mockapi.Config {
	out := mockapi.DefaultConfig()
	out.Addr = c.Addr
	out.BasePath = c.BasePath
	out.Token = c.Token
	if len(c.Tokens) > 0 {
		out.Validator = acceptAny(append([]string{c.Token}, c.Tokens...))
	}
	if c.Owner != "" {
		out.Owner = c.Owner
	}
	out.CORSOrigins = c.CorsOrigins
	return out
}

func acceptAny(tokens []string) auth.Validator {
	accepted := make([]auth.StaticToken, 0, len(tokens))
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			accepted = append(accepted, auth.StaticToken{Token: token})
		}
	}
	return auth.FuncValidator(func(token string) error {
		for _, v := range accepted {
			if v.Validate(token) == nil {
				return nil
			}
		}
		return auth.ErrUnauthorized
	})
}
