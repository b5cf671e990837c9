package storage

import (
	"net/url"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// Config is the parsed form of a storage uri; `file://<path>` opens a
// leveldb directory, `memory://` keeps everything in memory.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (config *Config, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(s); err != nil {
		err = pkgerrors.Wrapf(err, "failed to parse storage uri, '%s'", s)
		return
	}

	switch parsed.Scheme {
	case "memory":
		config = &Config{Scheme: parsed.Scheme}
	case "file":
		var path string
		if path, err = filepath.Abs(filepath.Join(parsed.Host, parsed.Path)); err != nil {
			err = pkgerrors.Wrapf(err, "invalid storage path, '%s'", s)
			return
		}
		config = &Config{Scheme: parsed.Scheme, Path: path}
	default:
		err = pkgerrors.Errorf("unsupported storage scheme, '%s'", parsed.Scheme)
	}

	return
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
