package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createOrUpdateTailoredResults = `-- name: CreateOrUpdateTailoredResults :exec
INSERT INTO tailored_results (
results, session_id)
VALUES ( $1, $2)
ON CONFLICT (session_id)
DO UPDATE SET
    results = EXCLUDED.results,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateTailoredResultsParams struct {
	Results   json.RawMessage
	SessionID uuid.UUID
}

func (q *Queries) CreateOrUpdateTailoredResults(ctx context.Context, arg CreateOrUpdateTailoredResultsParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateTailoredResults, arg.Results, arg.SessionID)
	return err
}

const getTailoredResultsBySession = `-- name: GetTailoredResultsBySession :one
SELECT id, results, created_at, updated_at, session_id FROM tailored_results
WHERE session_id=$1
`

func (q *Queries) GetTailoredResultsBySession(ctx context.Context, sessionID uuid.UUID) (TailoredResult, error) {
	row := q.db.QueryRowContext(ctx, getTailoredResultsBySession, sessionID)
	var i TailoredResult
	err := row.Scan(
		&i.ID,
		&i.Results,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SessionID,
	)
	return i, err
}
