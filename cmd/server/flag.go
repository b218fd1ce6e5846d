package main

import (
	"flag"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	backendMemory    = "memory"
	backendPostgres  = "postgres"
	backendMongo     = "mongo"
	backendFirestore = "firestore"
	backendRedis     = "redis"
)

// mainFlags are the configuration options which can be easily configured at run startup for different environments.
// Each is read from the environment before it is read from the command line.
type mainFlags struct {
	Port             int           `env:"PORT" envDefault:"8000"`
	Backend          string        `env:"TABLE_BACKEND" envDefault:"memory"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	FirestoreProject string        `env:"FIRESTORE_PROJECT"`
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	CacheMaxCost     int64         `env:"CACHE_MAX_COST"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	QueryPeriod      time.Duration `env:"QUERY_PERIOD" envDefault:"5s"`
	MaxTables        int           `env:"MAX_TABLES" envDefault:"64"`
	IdlePeriod       time.Duration `env:"IDLE_PERIOD" envDefault:"15m"`
	TokenValid       time.Duration `env:"TOKEN_VALID" envDefault:"24h"`
	TLSCertFile      string        `env:"TLS_CERT_FILE"`
	TLSKeyFile       string        `env:"TLS_KEY_FILE"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON          bool          `env:"LOG_JSON"`
}

// backends are the names of the places tables can be stored.
var backends = []string{
	backendMemory,
	backendPostgres,
	backendMongo,
	backendFirestore,
	backendRedis,
}

// usage prints how to run the server to the flagset's output.
func usage(fs *flag.FlagSet) {
	var envVars []string
	t := reflect.TypeOf(mainFlags{})
	for i := 0; i < t.NumField(); i++ {
		envVars = append(envVars, t.Field(i).Tag.Get("env"))
	}
	fmt.Fprintf(fs.Output(), "Runs the server\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
// The current values of the mainFlags are the defaults.
func (m *mainFlags) newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.Usage = func() {
		usage(fs) // [lazy evaluation]
	}
	fs.IntVar(&m.Port, "port", m.Port, "The TCP port for server requests.")
	fs.StringVar(&m.Backend, "backend", m.Backend, "Where tables are stored: one of "+strings.Join(backends, ", ")+".")
	fs.StringVar(&m.DatabaseURL, "data-source", m.DatabaseURL, "The connection URI of the PostgreSQL or MongoDB database.")
	fs.StringVar(&m.FirestoreProject, "firestore-project", m.FirestoreProject, "The Google Cloud project of the Firestore database.")
	fs.StringVar(&m.RedisAddr, "redis-addr", m.RedisAddr, "The host:port of the Redis server.")
	fs.StringVar(&m.RedisPassword, "redis-password", m.RedisPassword, "The password of the Redis server.")
	fs.Int64Var(&m.CacheMaxCost, "cache-max-cost", m.CacheMaxCost, "The number of bytes of table states to cache in memory.  Tables are not cached if not positive.")
	fs.DurationVar(&m.CacheTTL, "cache-ttl", m.CacheTTL, "How long cached tables are kept.")
	fs.DurationVar(&m.QueryPeriod, "query-period", m.QueryPeriod, "The maximum amount of time a single call to the database can take.")
	fs.IntVar(&m.MaxTables, "max-tables", m.MaxTables, "The maximum number of loaded tables.")
	fs.DurationVar(&m.IdlePeriod, "idle-period", m.IdlePeriod, "How long a table can go without requests before it is unloaded from memory.")
	fs.DurationVar(&m.TokenValid, "token-valid", m.TokenValid, "How long seat tokens are valid after a table is created.")
	fs.StringVar(&m.TLSCertFile, "tls-cert-file", m.TLSCertFile, "The absolute path of the certificate file to use for TLS.")
	fs.StringVar(&m.TLSKeyFile, "tls-key-file", m.TLSKeyFile, "The absolute path of the key file to use for TLS.")
	fs.StringVar(&m.LogLevel, "log-level", m.LogLevel, "The minimum level of messages to log, such as info or debug.")
	fs.BoolVar(&m.LogJSON, "log-json", m.LogJSON, "Logs messages as json objects when set.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, environment map[string]string) (*mainFlags, error) {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	var m mainFlags
	opts := env.Options{
		Environment: environment,
	}
	if err := env.ParseWithOptions(&m, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	fs := m.newFlagSet()
	if err := fs.Parse(osArgs[1:]); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate ensures the flags describe a server that can be run.
func (m mainFlags) validate() error {
	switch m.Backend {
	case backendMemory, backendRedis:
	case backendPostgres, backendMongo:
		if len(m.DatabaseURL) == 0 {
			return fmt.Errorf("data-source required for %v backend", m.Backend)
		}
	case backendFirestore:
		if len(m.FirestoreProject) == 0 {
			return fmt.Errorf("firestore-project required for firestore backend")
		}
	default:
		return fmt.Errorf("unknown backend %q, wanted one of %v", m.Backend, backends)
	}
	return nil
}

// environment converts KEY=value pairs to a map.
func environment(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
