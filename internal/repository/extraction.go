package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"contractocr/internal/extract"
)

// Statements are run one at a time; pgx's extended protocol rejects
// multi-command strings.
var extractionSchema = []string{
	`CREATE TABLE IF NOT EXISTS contract_extraction (
	id               UUID PRIMARY KEY,
	source_path      TEXT NOT NULL,
	party_a          TEXT,
	party_b          TEXT,
	contract_amount  TEXT,
	sign_date        TEXT,
	effective_date   TEXT,
	termination_date TEXT,
	sources          JSONB NOT NULL DEFAULT '{}',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS contract_extraction_source_path_idx
	ON contract_extraction (source_path)`,
}

// ExtractionRecord is one stored extraction row.
type ExtractionRecord struct {
	ID         uuid.UUID
	SourcePath string
	Fields     map[extract.FieldKey]*string
	CreatedAt  time.Time
}

// ExtractionRepository stores finished extractions.
type ExtractionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewExtractionRepository(pool *pgxpool.Pool, logger *slog.Logger) *ExtractionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionRepository{pool: pool, logger: logger}
}

// EnsureSchema creates the extraction table if it is missing.
func (r *ExtractionRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range extractionSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure extraction schema: %w", err)
		}
	}
	return nil
}

// SaveExtraction inserts one row per batch. Unresolved fields are stored as
// NULL; inputs are joined so a batch of documents keeps one record.
func (r *ExtractionRepository) SaveExtraction(ctx context.Context, inputs []string, res *extract.Result) (uuid.UUID, error) {
	id := uuid.New()
	fields := res.Fields()

	sources := make(map[string]string, len(extract.FieldKeys))
	for _, k := range extract.FieldKeys {
		if s, ok := res.Source(k); ok {
			sources[string(k)] = s
		}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal sources: %w", err)
	}

	const q = `
INSERT INTO contract_extraction
	(id, source_path, party_a, party_b, contract_amount, sign_date, effective_date, termination_date, sources)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(ctx, q,
		id,
		strings.Join(inputs, ";"),
		fields[extract.PartyA],
		fields[extract.PartyB],
		fields[extract.ContractAmount],
		fields[extract.SignDate],
		fields[extract.EffectiveDate],
		fields[extract.TerminationDate],
		sourcesJSON,
	)
	if err != nil {
		r.logger.Error("repository.extraction.save_error", "error", err)
		return uuid.Nil, fmt.Errorf("insert extraction: %w", err)
	}
	r.logger.Info("repository.extraction.saved", "id", id, "inputs", len(inputs))
	return id, nil
}

// ListExtractions returns stored rows, newest first.
func (r *ExtractionRepository) ListExtractions(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, source_path, party_a, party_b, contract_amount, sign_date, effective_date, termination_date, created_at
FROM contract_extraction
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var out []ExtractionRecord
	for rows.Next() {
		var rec ExtractionRecord
		var partyA, partyB, amount, signDate, effDate, termDate *string
		err := rows.Scan(&rec.ID, &rec.SourcePath, &partyA, &partyB, &amount, &signDate, &effDate, &termDate, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		rec.Fields = map[extract.FieldKey]*string{
			extract.PartyA:          partyA,
			extract.PartyB:          partyB,
			extract.ContractAmount:  amount,
			extract.SignDate:        signDate,
			extract.EffectiveDate:   effDate,
			extract.TerminationDate: termDate,
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
