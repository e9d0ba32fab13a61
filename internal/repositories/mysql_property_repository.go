package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/internal/utils"
)

const propertyColumns = `id, title, description, address, city, state, zip, price, bedrooms, bathrooms,
	square_footage, property_type, status, featured, video_link, images, created_at, updated_at`

type MySQLPropertyRepository struct {
	db *sql.DB
}

func NewMySQLPropertyRepository(db *sql.DB) *MySQLPropertyRepository {
	return &MySQLPropertyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var (
		p         models.Property
		videoLink sql.NullString
		images    []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address, &p.City, &p.State, &p.Zip, &p.Price,
		&p.Bedrooms, &p.Bathrooms, &p.SquareFootage, &p.PropertyType, &p.Status, &p.Featured,
		&videoLink, &images, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.VideoLink = videoLink.String
	p.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return p, fmt.Errorf("decode images of property %d: %w", p.ID, err)
		}
	}
	return p, nil
}

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *MySQLPropertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY id`)
	utils.RecordDBOperationDuration("mysql", "select", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "select", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return properties, nil
}

func (r *MySQLPropertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	utils.RecordDBOperationDuration("mysql", "select_one", propertiesCollection, start)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		utils.RecordDBError("mysql", "select_one", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &p, nil
}

func (r *MySQLPropertyRepository) insert(ctx context.Context, p *models.Property, withID bool) (sql.Result, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}
	args := []any{p.Title, p.Description, p.Address, p.City, p.State, p.Zip, p.Price,
		p.Bedrooms, p.Bathrooms, p.SquareFootage, p.PropertyType, p.Status, p.Featured,
		nullString(p.VideoLink), images, p.CreatedAt, p.UpdatedAt}
	query := `INSERT INTO properties (title, description, address, city, state, zip, price, bedrooms, bathrooms,
		square_footage, property_type, status, featured, video_link, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if withID {
		query = `INSERT INTO properties (` + propertyColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		args = append([]any{p.ID}, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *MySQLPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	start := time.Now()
	res, err := r.insert(ctx, property, false)
	utils.RecordDBOperationDuration("mysql", "insert", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "insert", propertiesCollection)
		return fmt.Errorf("insert property: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read property id: %w", err)
	}
	property.ID = id
	return nil
}

func (r *MySQLPropertyRepository) Update(ctx context.Context, p *models.Property) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET title = ?, description = ?, address = ?, city = ?,
		state = ?, zip = ?, price = ?, bedrooms = ?, bathrooms = ?, square_footage = ?, property_type = ?,
		status = ?, featured = ?, video_link = ?, images = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.Address, p.City, p.State, p.Zip, p.Price, p.Bedrooms, p.Bathrooms,
		p.SquareFootage, p.PropertyType, p.Status, p.Featured, nullString(p.VideoLink), images, p.UpdatedAt, p.ID)
	utils.RecordDBOperationDuration("mysql", "update", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "update", propertiesCollection)
		return fmt.Errorf("update property %d: %w", p.ID, err)
	}
	return r.requireRow(ctx, res, p.ID)
}

// requireRow maps a zero-row update to not-found. MySQL reports zero
// affected rows when nothing changed, so existence is checked separately.
func (r *MySQLPropertyRepository) requireRow(ctx context.Context, res sql.Result, id int64) error {
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM properties WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}
	if !exists {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *MySQLPropertyRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	utils.RecordDBOperationDuration("mysql", "delete", propertiesCollection, start)
	if err != nil {
		utils.RecordDBError("mysql", "delete", propertiesCollection)
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *MySQLPropertyRepository) AddImages(ctx context.Context, id int64, images []string) (*models.Property, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	start := time.Now()
	p, err := scanProperty(tx.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		utils.RecordDBError("mysql", "add_images", propertiesCollection)
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	if len(p.Images)+len(images) > models.MaxImages {
		return nil, fmt.Errorf("%w: property %d has %d of %d images", ErrTooManyImages, id, len(p.Images), models.MaxImages)
	}
	p.Images = append(p.Images, images...)
	p.UpdatedAt = time.Now().UTC()
	encoded, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE properties SET images = ?, updated_at = ? WHERE id = ?`, encoded, p.UpdatedAt, id); err != nil {
		utils.RecordDBError("mysql", "add_images", propertiesCollection)
		return nil, fmt.Errorf("add images to property %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit images for property %d: %w", id, err)
	}
	utils.RecordDBOperationDuration("mysql", "add_images", propertiesCollection, start)
	return &p, nil
}

// Seed inserts items with their ids when the table is empty.
func (r *MySQLPropertyRepository) Seed(ctx context.Context, items []models.Property) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count); err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if count > 0 {
		return nil
	}
	for i := range items {
		if _, err := r.insert(ctx, &items[i], true); err != nil {
			utils.RecordDBError("mysql", "seed", propertiesCollection)
			return fmt.Errorf("seed property %d: %w", items[i].ID, err)
		}
	}
	return nil
}
