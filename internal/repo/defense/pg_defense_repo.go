package defense_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/defense"
	"disputedesk/pkg/postgres"
)

const table = "defenses"

var columns = []string{
	"id", "dispute_id", "status", "source", "dossier", "opinion",
	"submission_response", "created_at", "updated_at", "submitted_at",
}

// PgDefenseRepo is the Postgres-backed defense repository.
type PgDefenseRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgDefenseRepo(pg *postgres.Postgres) defense.Repo {
	return &PgDefenseRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) Create(ctx context.Context, rec defense.Record) error {
	query, args, err := r.builder.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.DisputeID, rec.Status, rec.Source, rec.Dossier, rec.Opinion,
			rec.SubmissionResponse, rec.CreatedAt, rec.UpdatedAt, rec.SubmittedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create defense: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, id string) (defense.Record, error) {
	query, args, err := r.builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return defense.Record{}, fmt.Errorf("build select query: %w", err)
	}

	rec, err := scanRecord(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defense.Record{}, fmt.Errorf("%w: %s", apperror.ErrDefenseNotFound, id)
		}
		return defense.Record{}, fmt.Errorf("get defense: %w", err)
	}
	return rec, nil
}

func (r *repo) List(ctx context.Context) ([]defense.Record, error) {
	return r.list(ctx, nil)
}

func (r *repo) ListByDisputeID(ctx context.Context, disputeID string) ([]defense.Record, error) {
	return r.list(ctx, squirrel.Eq{"dispute_id": disputeID})
}

func (r *repo) list(ctx context.Context, where any) ([]defense.Record, error) {
	q := r.builder.Select(columns...).
		From(table).
		OrderBy("created_at DESC")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query defenses: %w", err)
	}
	defer rows.Close()

	return parseRows(rows)
}

func (r *repo) Update(ctx context.Context, rec defense.Record) error {
	query, args, err := r.builder.Update(table).
		Set("status", rec.Status).
		Set("dossier", rec.Dossier).
		Set("opinion", rec.Opinion).
		Set("submission_response", rec.SubmissionResponse).
		Set("updated_at", rec.UpdatedAt).
		Set("submitted_at", rec.SubmittedAt).
		Where(squirrel.Eq{"id": rec.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update defense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrDefenseNotFound, rec.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (defense.Record, error) {
	var rec defense.Record
	err := row.Scan(&rec.ID, &rec.DisputeID, &rec.Status, &rec.Source, &rec.Dossier,
		&rec.Opinion, &rec.SubmissionResponse, &rec.CreatedAt, &rec.UpdatedAt, &rec.SubmittedAt)
	if err != nil {
		return defense.Record{}, err
	}
	return rec, nil
}

func parseRows(rows pgx.Rows) ([]defense.Record, error) {
	var recs []defense.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan defense row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate defense rows: %w", err)
	}
	return recs, nil
}
