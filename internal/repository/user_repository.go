package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
)

// UserRepo provides persistence for API users.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user and populates the generated id.  Returns
// ErrEmailTaken when the email is already registered.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
    const q = `INSERT INTO users (email, password_hash, full_name, role) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, u.Email, u.PasswordHash, u.FullName, u.Role)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrEmailTaken
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)
    return nil
}

// GetByEmail loads a user by email for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT id, email, password_hash, full_name, role, created_at FROM users WHERE email = ?`
    return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

// GetByID loads a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    const q = `SELECT id, email, password_hash, full_name, role, created_at FROM users WHERE id = ?`
    return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// isDuplicateKey reports whether err is MySQL's duplicate-entry error
// (1062), raised when a unique index rejects an insert.
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}
