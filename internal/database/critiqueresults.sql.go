package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createOrUpdateCritiqueResults = `-- name: CreateOrUpdateCritiqueResults :exec
INSERT INTO critique_results (
results, average_score, session_id)
VALUES ( $1, $2, $3)
ON CONFLICT (session_id)
DO UPDATE SET
    results = EXCLUDED.results,
    average_score = EXCLUDED.average_score,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateCritiqueResultsParams struct {
	Results      json.RawMessage
	AverageScore int32
	SessionID    uuid.UUID
}

func (q *Queries) CreateOrUpdateCritiqueResults(ctx context.Context, arg CreateOrUpdateCritiqueResultsParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateCritiqueResults, arg.Results, arg.AverageScore, arg.SessionID)
	return err
}
