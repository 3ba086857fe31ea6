// Package config fills tagged structs from the process environment and
// optional .env files.
//
//	type Config struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option adjusts where Parse reads values from.
type Option func(*options)

type options struct {
	files       []string
	environ     map[string]string
	prefix      string
	requireFile bool
}

// WithEnvFiles reads the given .env files. Missing files are skipped
// unless WithRequiredEnvFiles is also given.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// WithRequiredEnvFiles makes a missing .env file an error.
func WithRequiredEnvFiles() Option {
	return func(o *options) { o.requireFile = true }
}

// WithEnvironment replaces the process environment. Mostly for tests.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environ = vars }
}

// WithPrefix prepends prefix to every env tag, e.g. "TAXID_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Parse fills a new T. Process (or WithEnvironment) values win over values
// from .env files, and files listed earlier win over later ones.
func Parse[T any](opts ...Option) (T, error) {
	var (
		cfg T
		o   options
	)
	for _, opt := range opts {
		opt(&o)
	}

	vars := make(map[string]string)
	for i := len(o.files) - 1; i >= 0; i-- {
		fileVars, err := godotenv.Read(o.files[i])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !o.requireFile {
				continue
			}
			return cfg, errors.Join(ErrReadingEnvFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	environ := o.environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	for k, v := range environ {
		vars[k] = v
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)
)

// Load parses T from the environment and a ./.env file, once per type for
// the life of the process. Later calls copy the cached value into v.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	cfg, err := Parse[T](append([]Option{WithEnvFiles(".env")}, opts...)...)
	if err != nil {
		return err
	}
	cache[key] = cfg
	*v = cfg
	return nil
}

// MustLoad is Load that panics, for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration %s: %v", typeName[T](), err))
	}
}

// Reset drops every cached configuration.
func Reset() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}

func typeName[T any]() string {
	return strings.TrimPrefix(reflect.TypeFor[T]().String(), "*")
}
