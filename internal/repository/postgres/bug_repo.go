package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
)

type BugRepo struct{ db *pgxpool.Pool }

func NewBugRepo(db *pgxpool.Pool) *BugRepo { return &BugRepo{db: db} }

const bugColumns = `id, title, description, status, priority, reporter, assigned_to, tags, created_at, updated_at`

// sortColumns maps public sort keys onto columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
}

// -----------------------------------------------------------------------------
// Listing
// -----------------------------------------------------------------------------

// Find returns every bug matching the equality filters, sorted. No paging.
func (r *BugRepo) Find(ctx context.Context, f repository.BugFilter) ([]models.Bug, error) {
	whereSQL, args := buildBugWhere(f)
	k := repository.ParseSort(f.Sort)
	ord := "ASC"
	if k.Desc {
		ord = "DESC"
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM bugs
		%s
		ORDER BY %s %s, created_at %s, id %s
	`, bugColumns, whereSQL, sortColumns[k.Field], ord, ord, ord)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bug{}
	for rows.Next() {
		b, err := scanBug(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Single bug + create/update/delete
// -----------------------------------------------------------------------------
func (r *BugRepo) FindByID(ctx context.Context, id string) (*models.Bug, error) {
	b, err := scanBug(r.db.QueryRow(ctx, `SELECT `+bugColumns+` FROM bugs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *BugRepo) Insert(ctx context.Context, b *models.Bug) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = b.CreatedAt
	if err := b.Validate(); err != nil {
		return err
	}
	b.ID = primitive.NewObjectID()
	if b.Tags == nil {
		b.Tags = []string{}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO bugs (`+bugColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		b.ID.Hex(), b.Title, b.Description, string(b.Status), string(b.Priority),
		b.Reporter, b.AssignedTo, b.Tags, b.CreatedAt, b.UpdatedAt,
	)
	return mapErr(err)
}

// UpdateByID writes only the columns the patch sets.
func (r *BugRepo) UpdateByID(ctx context.Context, id string, p models.BugPatch) (*models.Bug, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+itoa(len(args)))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Status != nil {
		set("status", string(*p.Status))
	}
	if p.Priority != nil {
		set("priority", string(*p.Priority))
	}
	if p.AssignedTo != nil {
		set("assigned_to", *p.AssignedTo)
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		set("tags", tags)
	}
	args = append(args, time.Now().UTC())
	// updated_at never drops below created_at, even with clock skew
	sets = append(sets, "updated_at = GREATEST($"+itoa(len(args))+", created_at)")
	args = append(args, id)

	sql := `UPDATE bugs SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + itoa(len(args)) + ` RETURNING ` + bugColumns

	b, err := scanBug(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BugRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM bugs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Aggregates
// -----------------------------------------------------------------------------

// CountBy groups the whole table by status or priority.
func (r *BugRepo) CountBy(ctx context.Context, field string) ([]models.GroupCount, error) {
	if err := repository.CheckGroupField(field); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+field+`, COUNT(*) FROM bugs GROUP BY `+field+` ORDER BY `+field)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GroupCount{}
	for rows.Next() {
		var g models.GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *BugRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildBugWhere composes the WHERE clause for the equality filters.
func buildBugWhere(f repository.BugFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	if f.Priority != "" {
		args = append(args, string(f.Priority))
		clauses = append(clauses, "priority = $"+itoa(len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanBug(row pgx.Row) (*models.Bug, error) {
	var (
		b      models.Bug
		id     string
		status string
		prio   string
	)
	if err := row.Scan(
		&id, &b.Title, &b.Description, &status, &prio,
		&b.Reporter, &b.AssignedTo, &b.Tags, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("bad stored id %q: %w", id, err)
	}
	b.ID = oid
	b.Status = models.Status(status)
	b.Priority = models.Priority(prio)
	return &b, nil
}

// mapErr turns check constraint violations into schema errors.
func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23514" || pgErr.Code == "23502") {
		return &models.SchemaError{Messages: []string{pgErr.Message}}
	}
	return err
}

func itoa(i int) string { return strconv.Itoa(i) }
