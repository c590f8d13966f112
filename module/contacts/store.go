package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a contact id does not exist.
var ErrNotFound = errors.New("contact not found")

type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Title     string    `json:"title"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Contact) Name() string {
	return c.FirstName + " " + c.LastName
}

// Store is the contact persistence boundary.
type Store interface {
	Insert(ctx context.Context, contact Contact) error
	List(ctx context.Context) ([]Contact, error)
	Get(ctx context.Context, id string) (Contact, error)
}

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Insert(ctx context.Context, contact Contact) error {
	const query = `
		INSERT INTO contacts (id, first_name, last_name, title, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		contact.ID, contact.FirstName, contact.LastName,
		contact.Title, contact.Phone, contact.Email, contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *sqlStore) List(ctx context.Context) ([]Contact, error) {
	const query = `
		SELECT id, first_name, last_name, title, phone, email, created_at
		FROM contacts
		ORDER BY last_name, first_name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Title, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Get(ctx context.Context, id string) (Contact, error) {
	const query = `
		SELECT id, first_name, last_name, title, phone, email, created_at
		FROM contacts
		WHERE id = ?`

	var c Contact
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Title, &c.Phone, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, ErrNotFound
	}
	if err != nil {
		return Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}
