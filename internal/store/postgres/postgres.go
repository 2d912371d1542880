package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users             { return &users{db: s.db} }
func (s *pgStore) Lists() store.Lists             { return &lists{db: s.db} }
func (s *pgStore) Items() store.Items             { return &items{db: s.db} }
func (s *pgStore) Memberships() store.Memberships { return &memberships{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap verifies Postgres is reachable and applies the embedded schema.
// The DDL is idempotent, so running against a provisioned database is a no-op.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	return ApplySchema(ctx, db)
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---
type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, email, display_name, password_hash)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.Email, m.DisplayName, m.PasswordHash)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreationTime = created
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, password_hash, creation_time
        FROM users WHERE email=$1
    `, email)
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func (u *users) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT user_id FROM users`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Lists ---
type lists struct{ db *sql.DB }

func (l *lists) Create(ctx context.Context, ml *model.List) (*model.List, error) {
	id := ml.ListID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := l.db.QueryRowContext(ctx, `
        INSERT INTO lists (list_id, owner_id, name, is_shared, is_public, is_favorite, is_template)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, ml.OwnerID, ml.Name, ml.IsShared, ml.IsPublic, ml.IsFavorite, ml.IsTemplate)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *ml
	out.ListID = id
	out.CreationTime = created
	return &out, nil
}

const listColumns = `list_id, owner_id, name, is_shared, is_public, is_favorite, is_template, creation_time`

func scanList(row *sql.Row) (*model.List, error) {
	var out model.List
	if err := row.Scan(&out.ListID, &out.OwnerID, &out.Name, &out.IsShared, &out.IsPublic, &out.IsFavorite, &out.IsTemplate, &out.CreationTime); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func collectLists(rows *sql.Rows) ([]*model.List, error) {
	defer func() { _ = rows.Close() }()
	var res []*model.List
	for rows.Next() {
		var ml model.List
		if err := rows.Scan(&ml.ListID, &ml.OwnerID, &ml.Name, &ml.IsShared, &ml.IsPublic, &ml.IsFavorite, &ml.IsTemplate, &ml.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &ml)
	}
	return res, rows.Err()
}

func (l *lists) GetByID(ctx context.Context, listID string) (*model.List, error) {
	return scanList(l.db.QueryRowContext(ctx, `
        SELECT `+listColumns+` FROM lists WHERE list_id=$1
    `, listID))
}

func (l *lists) GetPublic(ctx context.Context, listID string) (*model.List, error) {
	// The is_public predicate is applied server-side so a private list is
	// indistinguishable from a missing one.
	return scanList(l.db.QueryRowContext(ctx, `
        SELECT `+listColumns+` FROM lists WHERE list_id=$1 AND is_public=TRUE
    `, listID))
}

func (l *lists) FindByNameFold(ctx context.Context, ownerID, name string) (*model.List, error) {
	return scanList(l.db.QueryRowContext(ctx, `
        SELECT `+listColumns+` FROM lists WHERE owner_id=$1 AND lower(name)=lower($2) LIMIT 1
    `, ownerID, name))
}

func (l *lists) ListPersonal(ctx context.Context, ownerID string) ([]*model.List, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT `+listColumns+` FROM lists
        WHERE owner_id=$1 AND is_shared=FALSE AND is_template=FALSE
        ORDER BY creation_time DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	return collectLists(rows)
}

func (l *lists) ListShared(ctx context.Context) ([]*model.List, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT `+listColumns+` FROM lists
        WHERE is_shared=TRUE
        ORDER BY creation_time DESC
    `)
	if err != nil {
		return nil, err
	}
	return collectLists(rows)
}

func (l *lists) ListTemplates(ctx context.Context, ownerID string) ([]*model.List, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT `+listColumns+` FROM lists
        WHERE owner_id=$1 AND is_template=TRUE
        ORDER BY creation_time DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	return collectLists(rows)
}

func (l *lists) setFlag(ctx context.Context, column, listID string, val bool) error {
	res, err := l.db.ExecContext(ctx, `UPDATE lists SET `+column+`=$1 WHERE list_id=$2`, val, listID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (l *lists) SetFavorite(ctx context.Context, listID string, favorite bool) error {
	return l.setFlag(ctx, "is_favorite", listID, favorite)
}

func (l *lists) SetPublic(ctx context.Context, listID string, public bool) error {
	return l.setFlag(ctx, "is_public", listID, public)
}

func (l *lists) SetShared(ctx context.Context, listID string, shared bool) error {
	return l.setFlag(ctx, "is_shared", listID, shared)
}

func (l *lists) Delete(ctx context.Context, listID string) error {
	tx, err := l.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id=$1`, listID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM list_users WHERE list_id=$1`, listID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE list_id=$1`, listID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return tx.Commit()
}

// --- Items ---
type items struct{ db *sql.DB }

func (e *items) Create(ctx context.Context, it *model.Item) (*model.Item, error) {
	id := it.ItemID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO items (item_id, list_id, content, checked)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, it.ListID, it.Content, it.Checked)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *it
	out.ItemID = id
	out.CreationTime = created
	return &out, nil
}

func (e *items) ListByList(ctx context.Context, listID string) ([]*model.Item, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT item_id, list_id, content, checked, creation_time
        FROM items WHERE list_id=$1 ORDER BY creation_time ASC
    `, listID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ItemID, &it.ListID, &it.Content, &it.Checked, &it.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &it)
	}
	return res, rows.Err()
}

func (e *items) SetChecked(ctx context.Context, itemID string, checked bool) error {
	res, err := e.db.ExecContext(ctx, `UPDATE items SET checked=$1 WHERE item_id=$2`, checked, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (e *items) Delete(ctx context.Context, itemID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM items WHERE item_id=$1`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (e *items) CopyContents(ctx context.Context, srcListID, dstListID string) (int, error) {
	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
        SELECT content FROM items WHERE list_id=$1 ORDER BY creation_time ASC
    `, srcListID)
	if err != nil {
		return 0, err
	}
	var contents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			_ = rows.Close()
			return 0, err
		}
		contents = append(contents, c)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	// Content only: fresh IDs, checked reset to false.
	for _, c := range contents {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO items (item_id, list_id, content, checked) VALUES ($1,$2,$3,FALSE)
        `, uuid.New().String(), dstListID, c); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(contents), nil
}

// --- Memberships ---
type memberships struct{ db *sql.DB }

func (m *memberships) Grant(ctx context.Context, listID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, uid := range userIDs {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO list_users (list_id, user_id) VALUES ($1,$2)
            ON CONFLICT (list_id, user_id) DO NOTHING
        `, listID, uid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (m *memberships) ListUserIDs(ctx context.Context, listID string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT user_id FROM list_users WHERE list_id=$1`, listID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
