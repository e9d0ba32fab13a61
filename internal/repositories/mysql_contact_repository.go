package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/internal/utils"
)

const contactColumns = `id, name, email, phone, message, property_id, property_title, created_at, status`

type MySQLContactRepository struct {
	db *sql.DB
}

func NewMySQLContactRepository(db *sql.DB) *MySQLContactRepository {
	return &MySQLContactRepository{db: db}
}

func scanContact(row rowScanner) (models.Contact, error) {
	var (
		c            models.Contact
		phone, title sql.NullString
		propertyID   sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.Message, &propertyID, &title, &c.CreatedAt, &c.Status); err != nil {
		return c, err
	}
	c.Phone = phone.String
	c.PropertyTitle = title.String
	if propertyID.Valid {
		id := propertyID.Int64
		c.PropertyID = &id
	}
	return c, nil
}

func (r *MySQLContactRepository) FindAll(ctx context.Context) ([]models.Contact, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY id DESC`)
	utils.RecordDBOperationDuration("mysql", "select", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "select", contactsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *MySQLContactRepository) FindByID(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		utils.RecordDBError("mysql", "select_one", contactsCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &c, nil
}

func (r *MySQLContactRepository) insert(ctx context.Context, c *models.Contact, withID bool) (sql.Result, error) {
	var propertyID sql.NullInt64
	if c.PropertyID != nil {
		propertyID = sql.NullInt64{Int64: *c.PropertyID, Valid: true}
	}
	args := []any{c.Name, c.Email, nullString(c.Phone), c.Message, propertyID, nullString(c.PropertyTitle), c.CreatedAt, c.Status}
	if withID {
		return r.db.ExecContext(ctx, `INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			append([]any{c.ID}, args...)...)
	}
	return r.db.ExecContext(ctx, `INSERT INTO contacts (name, email, phone, message, property_id, property_title, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args...)
}

func (r *MySQLContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	start := time.Now()
	res, err := r.insert(ctx, contact, false)
	utils.RecordDBOperationDuration("mysql", "insert", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "insert", contactsCollection)
		return fmt.Errorf("insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read contact id: %w", err)
	}
	contact.ID = id
	return nil
}

func (r *MySQLContactRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	utils.RecordDBOperationDuration("mysql", "delete", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "delete", contactsCollection)
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *MySQLContactRepository) UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	start := time.Now()
	_, err := r.db.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, status, id)
	utils.RecordDBOperationDuration("mysql", "update_status", contactsCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "update_status", contactsCollection)
		return nil, fmt.Errorf("update contact %d: %w", id, err)
	}
	return r.FindByID(ctx, id)
}

func (r *MySQLContactRepository) Seed(ctx context.Context, items []models.Contact) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return fmt.Errorf("count contacts: %w", err)
	}
	if count > 0 {
		return nil
	}
	for i := range items {
		if _, err := r.insert(ctx, &items[i], true); err != nil {
			return fmt.Errorf("seed contact %d: %w", items[i].ID, err)
		}
	}
	return nil
}
