package illustration

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/logger"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Repository = (*PostgresRepository)(nil)

const selectColumns = `id::text AS id,
	coalesce(file_path, '') AS file_path,
	coalesce(title, '') AS title,
	coalesce(description, '') AS description,
	created_at`

// PostgresRepository reads the table directly through pgx.
type PostgresRepository struct {
	db    DBTX
	table string
	log   *logger.Logger
}

// NewPostgresRepository creates a repository over table.
func NewPostgresRepository(db DBTX, table string, log *logger.Logger) *PostgresRepository {
	if log == nil {
		log = logger.NewNop()
	}
	return &PostgresRepository{db: db, table: table, log: log.WithComponent("illustration.postgres")}
}

// List runs the page query and the count query.
func (r *PostgresRepository) List(ctx context.Context, q Query) ([]gallery.Illustration, int, error) {
	var items []gallery.Illustration
	if err := pgxscan.Select(ctx, r.db, &items, listSQL(r.table, q), q.Limit, q.Offset()); err != nil {
		r.log.Error("list query failed", logger.Fields(logger.FieldPage, q.Page, logger.FieldError, err.Error()))
		return nil, 0, apperrors.DatabaseError(err)
	}

	var count int
	if err := r.db.QueryRow(ctx, countSQL(r.table)).Scan(&count); err != nil {
		r.log.Error("count query failed", logger.Fields(logger.FieldError, err.Error()))
		return nil, 0, apperrors.DatabaseError(err)
	}
	if items == nil {
		items = []gallery.Illustration{}
	}
	return items, count, nil
}

// Get loads one row by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*gallery.Illustration, error) {
	var it gallery.Illustration
	err := pgxscan.Get(ctx, r.db, &it, getSQL(r.table), id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NotFound("illustration", id)
		}
		r.log.Error("get query failed", logger.Fields(logger.FieldIllustrationID, id, logger.FieldError, err.Error()))
		return nil, apperrors.DatabaseError(err)
	}
	return &it, nil
}

// Ping checks the connection with a trivial query.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "SELECT 1")
	return err
}

func listSQL(table string, q Query) string {
	dir := "DESC"
	if q.Ascending() {
		dir = "ASC"
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s %s LIMIT $1 OFFSET $2",
		selectColumns, pgx.Identifier{table}.Sanitize(), pgx.Identifier{q.SortBy}.Sanitize(), dir)
}

func countSQL(table string) string {
	return "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
}

func getSQL(table string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id::text = $1 LIMIT 1", selectColumns, pgx.Identifier{table}.Sanitize())
}
