package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	bakery "github.com/goliatone/go-bakery"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	sourceLabel = "go-bakery"
)

// dialectDirs maps each supported dialect to its directory in the embedded
// tree. Postgres files sit at the root, sqlite ones in a subdirectory.
var dialectDirs = []struct {
	dialect string
	dir     string
}{
	{dialect: DialectPostgres, dir: "data/sql/migrations"},
	{dialect: DialectSQLite, dir: "data/sql/migrations/sqlite"},
}

// Source is the migration set for one dialect.
type Source struct {
	Dialect string
	Path    string
	FS      fs.FS
}

type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*settings)

type settings struct {
	targets []string
}

// WithValidationTargets limits registration to the named dialects.
func WithValidationTargets(targets ...string) Option {
	return func(s *settings) {
		var next []string
		for _, target := range targets {
			target = strings.ToLower(strings.TrimSpace(target))
			if target != "" && !slices.Contains(next, target) {
				next = append(next, target)
			}
		}
		if len(next) > 0 {
			s.targets = next
		}
	}
}

// Sources resolves the postgres and sqlite migration sets from root, or
// from the embedded tree when root is nil. Each set must hold at least one
// *.up.sql file.
func Sources(root fs.FS) ([]Source, error) {
	if root == nil {
		root = bakery.GetMigrationsFS()
	}
	out := make([]Source, 0, len(dialectDirs))
	for _, entry := range dialectDirs {
		sub, err := fs.Sub(root, entry.dir)
		if err != nil {
			return nil, fmt.Errorf("migrations: %s directory %q: %w", entry.dialect, entry.dir, err)
		}
		ups, err := fs.Glob(sub, "*.up.sql")
		if err != nil {
			return nil, fmt.Errorf("migrations: glob %s: %w", entry.dir, err)
		}
		if len(ups) == 0 {
			return nil, fmt.Errorf("migrations: %s directory %q has no *.up.sql files", entry.dialect, entry.dir)
		}
		out = append(out, Source{Dialect: entry.dialect, Path: entry.dir, FS: sub})
	}
	return out, nil
}

// Register hands every targeted dialect's migrations to registerFn and
// returns the sources it registered. Both dialects are targeted by default.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) ([]Source, error) {
	if registerFn == nil {
		return nil, fmt.Errorf("migrations: register function is required")
	}
	cfg := settings{targets: []string{DialectPostgres, DialectSQLite}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	sources, err := Sources(nil)
	if err != nil {
		return nil, err
	}
	var registered []Source
	for _, source := range sources {
		if !slices.Contains(cfg.targets, source.Dialect) {
			continue
		}
		if err := registerFn(ctx, source.Dialect, sourceLabel, source.FS); err != nil {
			return registered, fmt.Errorf("migrations: register %s: %w", source.Dialect, err)
		}
		registered = append(registered, source)
	}
	if len(registered) == 0 {
		return nil, fmt.Errorf("migrations: no sources match targets %v", cfg.targets)
	}
	return registered, nil
}
