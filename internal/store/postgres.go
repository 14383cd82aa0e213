package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the shared-deployment SubnetStore backend, selected when a
// database URL is configured.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS subnets (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	uid TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	service_oriented_scores JSONB,
	research_oriented_scores JSONB,
	intelligence_oriented_scores JSONB,
	resource_oriented_scores JSONB,
	additional_criteria_scores JSONB,
	service_research_score JSONB,
	intelligence_resource_score JSONB,
	total_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	tier TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const subnetColumnList = `id, name, uid, description,
	service_oriented_scores, research_oriented_scores,
	intelligence_oriented_scores, resource_oriented_scores,
	additional_criteria_scores,
	service_research_score, intelligence_resource_score,
	total_score, tier, created_at, updated_at`

func (s *PostgresStore) UpsertSubnet(ctx context.Context, rec *SubnetRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	cols, err := encodeSubnetColumns(rec)
	if err != nil {
		return err
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO subnets (id, name, uid, description,
			service_oriented_scores, research_oriented_scores,
			intelligence_oriented_scores, resource_oriented_scores,
			additional_criteria_scores,
			service_research_score, intelligence_resource_score,
			total_score, tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, uid = EXCLUDED.uid, description = EXCLUDED.description,
			service_oriented_scores = EXCLUDED.service_oriented_scores,
			research_oriented_scores = EXCLUDED.research_oriented_scores,
			intelligence_oriented_scores = EXCLUDED.intelligence_oriented_scores,
			resource_oriented_scores = EXCLUDED.resource_oriented_scores,
			additional_criteria_scores = EXCLUDED.additional_criteria_scores,
			service_research_score = EXCLUDED.service_research_score,
			intelligence_resource_score = EXCLUDED.intelligence_resource_score,
			total_score = EXCLUDED.total_score, tier = EXCLUDED.tier,
			updated_at = now()
		RETURNING created_at, updated_at`,
		rec.ID, rec.Name, rec.UID, rec.Description,
		cols.service, cols.research, cols.intelligence, cols.resource,
		cols.additional, cols.serviceResearch, cols.intelligenceResource,
		rec.TotalScore, rec.Tier,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func (s *PostgresStore) GetSubnet(ctx context.Context, id uuid.UUID) (*SubnetRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+subnetColumnList+` FROM subnets WHERE id = $1`, id)
	rec, err := scanPostgresSubnet(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) ListSubnets(ctx context.Context) ([]*SubnetRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+subnetColumnList+` FROM subnets ORDER BY total_score DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subnets: %w", err)
	}
	defer rows.Close()

	var records []*SubnetRecord
	for rows.Next() {
		rec, err := scanPostgresSubnet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subnet: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) DeleteSubnet(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM subnets WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) ClearSubnets(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM subnets`)
	return err
}

func scanPostgresSubnet(row pgx.Row) (*SubnetRecord, error) {
	rec := &SubnetRecord{}
	var cols subnetColumns

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.UID, &rec.Description,
		&cols.service, &cols.research, &cols.intelligence, &cols.resource,
		&cols.additional, &cols.serviceResearch, &cols.intelligenceResource,
		&rec.TotalScore, &rec.Tier, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeSubnetColumns(rec, cols); err != nil {
		return nil, err
	}
	return rec, nil
}
