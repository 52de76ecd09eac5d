package repository

import (
	"context"
	"database/sql"

	"github.com/factora/auth-service/internal/auth"
	"github.com/factora/auth-service/internal/model"
)

// CompanyRepo mirrors the 'companies' table.
type CompanyRepo struct{ DB *sql.DB }

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{DB: db} }

// CreateWithAdmin inserts a company and its first user inside one
// transaction. If the user insert fails — most commonly a duplicate email —
// the company insert is rolled back with it, so registration never leaves
// an orphan company behind. On success both structs get their generated ids
// and the user's company id filled in.
func (r *CompanyRepo) CreateWithAdmin(ctx context.Context, company *model.Company, user *model.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO companies (name) VALUES (?)", company.Name)
	if err != nil {
		return err
	}
	companyID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name, role, company_id, is_active) VALUES (?,?,?,?,?,?,?)",
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, companyID, user.IsActive)
	if err != nil {
		if isDuplicateKey(err) {
			return auth.ErrEmailExists
		}
		return err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	company.ID = uint64(companyID)
	user.ID = uint64(userID)
	user.CompanyID = uint64(companyID)
	return nil
}

// GetByID fetches a company by id.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	var c model.Company
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,created_at,updated_at FROM companies WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
