package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"provision/internal/listing/models"
	"provision/pkg/platform/sentinel"
)

//go:embed schema.sql
var schemaSQL string

const listingColumns = "id, title, details, service_type, provider_name, phone, price, available_at, created_at"

// likeEscaper neutralizes LIKE wildcards so a query term always matches as a
// literal substring, same as the in-memory store.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Postgres is the PostgreSQL-backed Store.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the listings table and its indexes if missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure listings schema: %w", err)
	}
	return nil
}

func (s *Postgres) Insert(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	query := `
		INSERT INTO listings (title, details, service_type, provider_name, phone, price, available_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + listingColumns
	row := s.db.QueryRowContext(ctx, query,
		l.Title, l.Details, l.ServiceType, l.ProviderName, l.Phone, l.Price, l.AvailableAt)
	stored, err := scanListing(row)
	if err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}
	return stored, nil
}

func (s *Postgres) Get(ctx context.Context, id int64) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = $1", id)
	stored, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return stored, nil
}

func (s *Postgres) Update(ctx context.Context, id int64, patch models.ListingPatch) (*models.Listing, error) {
	sets := []string{}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Details != nil {
		add("details", *patch.Details)
	}
	if patch.ServiceType != nil {
		add("service_type", *patch.ServiceType)
	}
	if patch.ProviderName != nil {
		add("provider_name", *patch.ProviderName)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.AvailableAt != nil {
		add("available_at", *patch.AvailableAt)
	}

	if len(sets) == 0 {
		return s.Get(ctx, id)
	}

	query := fmt.Sprintf("UPDATE listings SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, listingColumns)
	args = append(args, id)

	stored, err := scanListing(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return stored, nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, f models.Filter) ([]models.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE true"
	args := []any{}
	idx := 1

	if f.Query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Query)) + "%"
		query += fmt.Sprintf(
			" AND (LOWER(title) LIKE $%d ESCAPE '\\' OR (details IS NOT NULL AND LOWER(details) LIKE $%d ESCAPE '\\'))",
			idx, idx+1)
		args = append(args, pattern, pattern)
		idx += 2
	}
	if f.ServiceType != "" {
		query += fmt.Sprintf(" AND service_type = $%d", idx)
		args = append(args, f.ServiceType)
		idx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", idx)
		args = append(args, *f.MinPrice)
		idx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", idx)
		args = append(args, *f.MaxPrice)
		idx++
	}
	if f.AvailableOn != nil {
		start, end := f.DayWindow()
		query += fmt.Sprintf(" AND available_at >= $%d AND available_at <= $%d", idx, idx+1)
		args = append(args, start, end)
		idx += 2
	}

	direction := "ASC"
	if f.Order == models.OrderDesc {
		direction = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	query += fmt.Sprintf(" ORDER BY price %s LIMIT $%d OFFSET $%d", direction, idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("list listings: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var l models.Listing
	var details, providerName sql.NullString
	err := row.Scan(&l.ID, &l.Title, &details, &l.ServiceType, &providerName,
		&l.Phone, &l.Price, &l.AvailableAt, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if details.Valid {
		l.Details = &details.String
	}
	if providerName.Valid {
		l.ProviderName = &providerName.String
	}
	return &l, nil
}
