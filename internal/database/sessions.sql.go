package database

import (
	"context"

	"github.com/google/uuid"
)

const getTailorSession = `-- name: GetTailorSession :one
SELECT id, created_at, updated_at, name, user_id, status, status_message, job_title, job_description FROM tailor_sessions
WHERE id=$1
`

func (q *Queries) GetTailorSession(ctx context.Context, id uuid.UUID) (TailorSession, error) {
	row := q.db.QueryRowContext(ctx, getTailorSession, id)
	var i TailorSession
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Name,
		&i.UserID,
		&i.Status,
		&i.StatusMessage,
		&i.JobTitle,
		&i.JobDescription,
	)
	return i, err
}

const updateSessionStatus = `-- name: UpdateSessionStatus :exec
UPDATE tailor_sessions
SET status=$1, status_message=$2, updated_at=CURRENT_TIMESTAMP
WHERE id=$3
`

type UpdateSessionStatusParams struct {
	Status        string
	StatusMessage string
	ID            uuid.UUID
}

func (q *Queries) UpdateSessionStatus(ctx context.Context, arg UpdateSessionStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateSessionStatus, arg.Status, arg.StatusMessage, arg.ID)
	return err
}
