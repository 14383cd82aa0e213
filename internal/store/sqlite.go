package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the embedded SubnetStore backend, used when no database URL
// is configured. It keeps the flat subnet snapshot table in a local file.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS subnets (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	uid TEXT,
	description TEXT,
	service_oriented_scores TEXT,
	research_oriented_scores TEXT,
	intelligence_oriented_scores TEXT,
	resource_oriented_scores TEXT,
	additional_criteria_scores TEXT,
	service_research_score TEXT,
	intelligence_resource_score TEXT,
	total_score REAL,
	tier TEXT,
	created_at TIMESTAMP,
	updated_at TIMESTAMP
)`

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertSubnet(ctx context.Context, rec *SubnetRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	cols, err := encodeSubnetColumns(rec)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO subnets (id, name, uid, description,
			service_oriented_scores, research_oriented_scores,
			intelligence_oriented_scores, resource_oriented_scores,
			additional_criteria_scores,
			service_research_score, intelligence_resource_score,
			total_score, tier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, uid=excluded.uid, description=excluded.description,
			service_oriented_scores=excluded.service_oriented_scores,
			research_oriented_scores=excluded.research_oriented_scores,
			intelligence_oriented_scores=excluded.intelligence_oriented_scores,
			resource_oriented_scores=excluded.resource_oriented_scores,
			additional_criteria_scores=excluded.additional_criteria_scores,
			service_research_score=excluded.service_research_score,
			intelligence_resource_score=excluded.intelligence_resource_score,
			total_score=excluded.total_score, tier=excluded.tier,
			updated_at=excluded.updated_at`,
		rec.ID.String(), rec.Name, rec.UID, rec.Description,
		cols.service, cols.research, cols.intelligence, cols.resource,
		cols.additional, cols.serviceResearch, cols.intelligenceResource,
		rec.TotalScore, rec.Tier, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subnet: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSubnet(ctx context.Context, id uuid.UUID) (*SubnetRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, uid, description,
			service_oriented_scores, research_oriented_scores,
			intelligence_oriented_scores, resource_oriented_scores,
			additional_criteria_scores,
			service_research_score, intelligence_resource_score,
			total_score, tier, created_at, updated_at
		FROM subnets WHERE id = ?`, id.String())

	rec, err := scanSubnetRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subnet: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListSubnets(ctx context.Context) ([]*SubnetRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, uid, description,
			service_oriented_scores, research_oriented_scores,
			intelligence_oriented_scores, resource_oriented_scores,
			additional_criteria_scores,
			service_research_score, intelligence_resource_score,
			total_score, tier, created_at, updated_at
		FROM subnets ORDER BY total_score DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subnets: %w", err)
	}
	defer rows.Close()

	var records []*SubnetRecord
	for rows.Next() {
		rec, err := scanSubnetRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subnet: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) DeleteSubnet(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subnets WHERE id = ?`, id.String())
	return err
}

func (s *SQLiteStore) ClearSubnets(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM subnets`)
	return err
}

// --- column codecs shared by the SQL backends ---

type subnetColumns struct {
	service              []byte
	research             []byte
	intelligence         []byte
	resource             []byte
	additional           []byte
	serviceResearch      []byte
	intelligenceResource []byte
}

func encodeSubnetColumns(rec *SubnetRecord) (subnetColumns, error) {
	var cols subnetColumns
	var err error
	encode := func(v interface{}) []byte {
		if err != nil {
			return nil
		}
		var data []byte
		data, err = json.Marshal(v)
		return data
	}
	cols.service = encode(rec.ServiceScores)
	cols.research = encode(rec.ResearchScores)
	cols.intelligence = encode(rec.IntelligenceScores)
	cols.resource = encode(rec.ResourceScores)
	cols.additional = encode(rec.Additional)
	cols.serviceResearch = encode(rec.ServiceResearch)
	cols.intelligenceResource = encode(rec.IntelligenceResource)
	if err != nil {
		return cols, fmt.Errorf("encode subnet columns: %w", err)
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubnetRow(row rowScanner) (*SubnetRecord, error) {
	rec := &SubnetRecord{}
	var id string
	var cols subnetColumns

	err := row.Scan(
		&id, &rec.Name, &rec.UID, &rec.Description,
		&cols.service, &cols.research, &cols.intelligence, &cols.resource,
		&cols.additional, &cols.serviceResearch, &cols.intelligenceResource,
		&rec.TotalScore, &rec.Tier, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse subnet id: %w", err)
	}
	if err := decodeSubnetColumns(rec, cols); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeSubnetColumns(rec *SubnetRecord, cols subnetColumns) error {
	for _, col := range []struct {
		data []byte
		dst  interface{}
	}{
		{cols.service, &rec.ServiceScores},
		{cols.research, &rec.ResearchScores},
		{cols.intelligence, &rec.IntelligenceScores},
		{cols.resource, &rec.ResourceScores},
		{cols.additional, &rec.Additional},
		{cols.serviceResearch, &rec.ServiceResearch},
		{cols.intelligenceResource, &rec.IntelligenceResource},
	} {
		if len(col.data) == 0 || string(col.data) == "null" {
			continue
		}
		if err := json.Unmarshal(col.data, col.dst); err != nil {
			return fmt.Errorf("decode subnet column: %w", err)
		}
	}
	return nil
}
