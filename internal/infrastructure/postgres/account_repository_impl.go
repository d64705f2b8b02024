package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	"github.com/oksasatya/event-portal/internal/domain/repository"
)

const uniqueViolation = "23505"

// accountColumns never includes password_hash; only GetCredentials reads it.
const accountColumns = `id, username, email, full_name, profile_pic, batch, is_admin, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.ProfilePic, &a.Batch,
		&a.IsAdmin, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// validID keeps malformed identifiers from reaching the uuid column as a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateUsername
	}
	return err
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (username, password_hash, email, full_name, profile_pic, batch, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.Username, a.Password, a.Email, a.FullName, a.ProfilePic, a.Batch, a.IsAdmin)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *AccountRepository) GetCredentials(ctx context.Context, username string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+`, password_hash FROM accounts WHERE username = $1`, username)
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.ProfilePic, &a.Batch,
		&a.IsAdmin, &a.CreatedAt, &a.UpdatedAt, &a.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

// accountAssignments renders the SET list for p with placeholders starting at $1.
func accountAssignments(p repository.AccountPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if p.Username != nil {
		add("username", *p.Username)
	}
	if p.FullName != nil {
		add("full_name", *p.FullName)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Batch != nil {
		add("batch", *p.Batch)
	}
	if p.IsAdmin != nil {
		add("is_admin", *p.IsAdmin)
	}
	if p.ProfilePic != nil {
		add("profile_pic", *p.ProfilePic)
	}
	if p.PasswordHash != nil {
		add("password_hash", *p.PasswordHash)
	}
	return sets, args
}

// Update applies exactly the columns set in p and returns the resulting row.
// An empty patch performs no write.
func (r *AccountRepository) Update(ctx context.Context, id string, p repository.AccountPatch) (*entity.Account, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	if p.Empty() {
		return r.GetByID(ctx, id)
	}
	sets, args := accountAssignments(p)
	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	q := `UPDATE accounts SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + accountColumns

	a, err := scanAccount(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return a, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) (*entity.Account, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanAccount(r.pool.QueryRow(ctx, `DELETE FROM accounts WHERE id = $1 RETURNING `+accountColumns, id))
}

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// accountWhere renders the directory filter with placeholders starting at $1.
func accountWhere(f repository.AccountFilter) (string, []any) {
	args := []any{"%" + escapeLike(f.Search) + "%"}
	where := `WHERE username ILIKE $1 ESCAPE '\'`
	if f.Batch != "" {
		args = append(args, f.Batch)
		where += ` AND batch = $2`
	}
	return where, args
}

// accountPageQuery selects one page newest first; id breaks ties so pages never overlap.
func accountPageQuery(where string, args []any, f repository.AccountFilter) (string, []any) {
	n := len(args)
	args = append(args, f.Limit, f.Offset)
	q := `SELECT ` + accountColumns + ` FROM accounts ` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	return q, args
}

func (r *AccountRepository) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	where, args := accountWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM accounts `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q, args := accountPageQuery(where, args, f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*entity.Account, 0, f.Limit)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
