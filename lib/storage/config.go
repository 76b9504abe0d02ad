package storage

import (
	"net/url"

	"github.com/pkg/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage endpoint like "file:///tmp/db" or
// "memory://".
func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse storage config %s", s)
	}

	switch u.Scheme {
	case "memory":
		return &Config{Scheme: "memory"}, nil
	case "file":
		if len(u.Path) == 0 {
			return nil, errors.Errorf("storage config %s has no path", s)
		}
		return &Config{Scheme: "file", Path: u.Host + u.Path}, nil
	default:
		return nil, errors.Errorf("unsupported storage scheme %s", u.Scheme)
	}
}
