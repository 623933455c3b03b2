package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	full_name     text NOT NULL,
	password_hash text NOT NULL DEFAULT '',
	phone         text,
	farm_name     text,
	role          text NOT NULL DEFAULT 'rancher',
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS animals (
	id                uuid PRIMARY KEY,
	tag_number        text NOT NULL UNIQUE,
	sex               text NOT NULL,
	birth_date        date,
	role              text NOT NULL DEFAULT '',
	pregnancy_status  text NOT NULL DEFAULT 'NOT_PREGNANT',
	insemination_date date,
	category          text NOT NULL,
	test_result       text NOT NULL DEFAULT 'PENDING',
	destination       text,
	test_date         timestamptz,
	sale_status       text NOT NULL DEFAULT 'PENDING',
	sale_price        double precision,
	sale_date         timestamptz,
	created_at        timestamptz NOT NULL DEFAULT now(),
	updated_at        timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS animals_category_idx ON animals (category);
CREATE INDEX IF NOT EXISTS animals_sale_status_idx ON animals (sale_status);
`

// ApplySchema creates the herdflow tables against the DSN. When isolate is
// true, a per-run schema is created and dropped via the returned teardown
// func so shared databases stay clean.
func ApplySchema(ctx context.Context, dsn string, isolate bool) (*pgxpool.Pool, func(context.Context) error, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse pool config: %w", err)
	}

	cleanup := func(context.Context) error { return nil }

	if isolate {
		schema := fmt.Sprintf("herdflow_run_%d", time.Now().UnixNano())
		ident := pgx.Identifier{schema}.Sanitize()

		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect for schema: %w", err)
		}
		if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", ident)); err != nil {
			conn.Close(ctx)
			return nil, nil, fmt.Errorf("create schema %s: %w", schema, err)
		}
		conn.Close(ctx)

		setPath := fmt.Sprintf("SET search_path TO %s, public", ident)
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, setPath)
			return err
		}

		cleanup = func(ctx context.Context) error {
			dropConn, err := pgx.Connect(ctx, dsn)
			if err != nil {
				return err
			}
			defer dropConn.Close(ctx)
			_, err = dropConn.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", ident))
			return err
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect pool: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("apply schema: %w", err)
	}

	return pool, cleanup, nil
}
