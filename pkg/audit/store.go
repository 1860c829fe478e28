package audit

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"

	"github.com/personahq/persona/pkg/model"
)

// Recordable is an event that produces an access_logs row in addition to its
// syslog line. Only disclosure events are recordable; lifecycle events stay
// in the syslog stream.
type Recordable interface {
	Event
	Record() *model.AccessLog
}

// Store appends recordable audit events to the access_logs table
type Store struct {
	db *sql.DB
}

// NewStore creates a new audit store from DATABASE_URL.
// Returns nil if DATABASE_URL is not set (access-log persistence disabled).
func NewStore() (*Store, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
// Useful for testing with sqlmock
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists a recordable audit event to access_logs. Events that carry
// no access-log row are a no-op here.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	recordable, ok := event.(Recordable)
	if !ok {
		return nil
	}
	record := recordable.Record()

	fieldsJSON, err := json.Marshal(record.AccessedFields)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO access_logs (identity_id, accessed_by, accessed_fields, access_context, ip_address, user_agent, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		record.IdentityID,
		record.AccessedBy,
		fieldsJSON,
		record.AccessContext,
		record.IPAddress,
		record.UserAgent,
		time.Now().UTC(),
	)

	return err
}

// DB returns the underlying database connection (for testing)
func (s *Store) DB() *sql.DB {
	return s.db
}
