package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/jacobpatterson1549/selene-azul/db"
	"github.com/jacobpatterson1549/selene-azul/db/cache"
	"github.com/jacobpatterson1549/selene-azul/db/firestore"
	"github.com/jacobpatterson1549/selene-azul/db/mongo"
	"github.com/jacobpatterson1549/selene-azul/db/redis"
	"github.com/jacobpatterson1549/selene-azul/db/sql"
	"github.com/jacobpatterson1549/selene-azul/db/sql/postgres"
	"github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/server"
	"github.com/jacobpatterson1549/selene-azul/server/auth"
	"github.com/jacobpatterson1549/selene-azul/server/log"
	serverTable "github.com/jacobpatterson1549/selene-azul/server/table"
	_ "github.com/lib/pq" // register "postgres" database driver from package init() function
)

// closer releases the resources of a table backend.
type closer func()

// newLogConfig creates the configuration of the logger.
func (m mainFlags) newLogConfig() log.Config {
	cfg := log.Config{
		Level: m.LogLevel,
		JSON:  m.LogJSON,
	}
	return cfg
}

// createServer creates the server and its table runner on top of the backend.
func (m mainFlags) createServer(log log.Logger, backend table.Backend, e embedParameters) (*server.Server, error) {
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	tokenizerCfg := m.tokenizerConfig(crypto_rand.Reader, timeFunc)
	tokenizer, err := tokenizerCfg.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("creating seat tokenizer: %w", err)
	}
	dao, err := table.NewDao(backend)
	if err != nil {
		return nil, fmt.Errorf("creating table dao: %w", err)
	}
	runnerCfg := m.tableRunnerConfig(log, timeFunc)
	runner, err := runnerCfg.NewRunner(dao)
	if err != nil {
		return nil, fmt.Errorf("creating table runner: %w", err)
	}
	cfg := m.serverConfig(e.version)
	p := server.Parameters{
		Logger:    log,
		Tokenizer: tokenizer,
		Runner:    runner,
	}
	s, err := cfg.NewServer(p)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	return s, nil
}

// serverConfig creates the configuration of the http server.
func (m mainFlags) serverConfig(version string) server.Config {
	cfg := server.Config{
		Port:        m.Port,
		StopDur:     time.Second,
		Version:     version,
		TLSCertFile: m.TLSCertFile,
		TLSKeyFile:  m.TLSKeyFile,
		SeedFunc: func() int64 {
			return time.Now().UnixNano()
		},
	}
	return cfg
}

// tokenizerConfig creates the configuration for seat token reader/writer.
func (m mainFlags) tokenizerConfig(keyReader io.Reader, timeFunc func() int64) auth.TokenizerConfig {
	cfg := auth.TokenizerConfig{
		KeyReader: keyReader,
		TimeFunc:  timeFunc,
		ValidSec:  int64(m.TokenValid.Seconds()),
	}
	return cfg
}

// tableRunnerConfig creates the configuration of the table runner.
func (m mainFlags) tableRunnerConfig(log log.Logger, timeFunc func() int64) serverTable.RunnerConfig {
	cfg := serverTable.RunnerConfig{
		Log:        log,
		MaxTables:  m.MaxTables,
		IdlePeriod: m.IdlePeriod,
		TimeFunc:   timeFunc,
		IDFunc:     uuid.NewString,
	}
	return cfg
}

// dbConfig creates the configuration shared by databases.
func (m mainFlags) dbConfig() db.Config {
	cfg := db.Config{
		QueryPeriod: m.QueryPeriod,
	}
	return cfg
}

// createTableBackend connects to the storage for tables named by the backend flag.
// The closer should be called when the server stops.
func (m mainFlags) createTableBackend(ctx context.Context, e embedParameters) (table.Backend, closer, error) {
	backend, closeBackend, err := m.createStorageBackend(ctx, e)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %v table backend: %w", m.Backend, err)
	}
	if m.CacheMaxCost <= 0 {
		return backend, closeBackend, nil
	}
	cacheCfg := cache.Config{
		MaxCost: m.CacheMaxCost,
		TTL:     m.CacheTTL,
	}
	c, err := cacheCfg.NewBackend(backend)
	if err != nil {
		closeBackend()
		return nil, nil, err
	}
	closeAll := func() {
		c.Close()
		closeBackend()
	}
	return c, closeAll, nil
}

// createStorageBackend creates the backend that stores the tables.
func (m mainFlags) createStorageBackend(ctx context.Context, e embedParameters) (table.Backend, closer, error) {
	noop := func() {}
	switch m.Backend {
	case backendPostgres:
		return m.createPostgresBackend(ctx, e)
	case backendMongo:
		b, err := mongo.NewTableBackend(ctx, m.dbConfig(), m.DatabaseURL)
		return b, noop, err
	case backendFirestore:
		b, err := firestore.NewTableBackend(ctx, m.dbConfig(), m.FirestoreProject)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	case backendRedis:
		cfg := redis.Config{
			Addr:     m.RedisAddr,
			Password: m.RedisPassword,
			Config:   m.dbConfig(),
		}
		b, err := cfg.NewTableBackend(ctx)
		return b, noop, err
	}
	return table.NewMemoryBackend(), noop, nil
}

// createPostgresBackend opens the database and runs the embedded sql setup files.
func (m mainFlags) createPostgresBackend(ctx context.Context, e embedParameters) (table.Backend, closer, error) {
	cfg := sql.DatabaseConfig{
		DriverName:  postgres.DriverName,
		DatabaseURL: m.DatabaseURL,
		Config:      m.dbConfig(),
	}
	d, err := cfg.NewDatabase()
	if err != nil {
		return nil, nil, err
	}
	closeBackend := func() { d.Close() }
	setupFiles, err := sqlFiles(e.sqlFS)
	if err != nil {
		closeBackend()
		return nil, nil, err
	}
	b, err := postgres.NewTableBackend(ctx, d, setupFiles...)
	if err != nil {
		closeBackend()
		return nil, nil, err
	}
	return b, closeBackend, nil
}

// sqlFiles opens the setup files, in name order.
func sqlFiles(fsys fs.FS) ([]io.Reader, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading sql files: %w", err)
	}
	files := make([]io.Reader, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, err := fsys.Open(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("opening sql file: %w", err)
		}
		files = append(files, f)
	}
	return files, nil
}
