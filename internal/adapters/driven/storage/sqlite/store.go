package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veritas-labs/itemforge-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
	"github.com/veritas-labs/itemforge-cli/internal/core/ports/driven"
	"github.com/veritas-labs/itemforge-cli/internal/logger"
)

// Store is a unified SQLite-based storage that provides access to the
// item and embedding store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.itemforge/data/items.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".itemforge", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "items.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ItemStore returns an ItemStore interface backed by this store.
func (s *Store) ItemStore() driven.ItemStore {
	return &itemStore{store: s}
}

// EmbeddingStore returns an EmbeddingStore interface backed by this store.
func (s *Store) EmbeddingStore() driven.EmbeddingStore {
	return &embeddingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Item Store ====================

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// Save stores a new item and assigns its ID.
func (s *itemStore) Save(ctx context.Context, item *domain.Item) error {
	choicesJSON, err := json.Marshal(item.Choices)
	if err != nil {
		return fmt.Errorf("marshalling choices: %w", err)
	}
	metadataJSON, err := json.Marshal(item.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO items (source, prompt, stimulus, stem, choices, answer, metadata, status, committed, commit_batch, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(item.Source), nullString(item.Prompt), item.Stimulus, item.Stem,
		string(choicesJSON), item.Answer, string(metadataJSON), string(item.Status),
		boolToInt(item.Committed), nullString(item.CommitBatch), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted item id: %w", err)
	}
	item.ID = id
	return nil
}

const itemColumns = `id, source, prompt, stimulus, stem, choices, answer, metadata, status, committed, commit_batch, created_at`

// Get retrieves an item by ID.
func (s *itemStore) Get(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return item, err
}

// List returns the most recent items, newest first, up to limit.
func (s *itemStore) List(ctx context.Context, limit int) ([]domain.Item, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateStatus sets the review status of an item.
func (s *itemStore) UpdateStatus(ctx context.Context, id int64, status domain.ItemStatus) error {
	res, err := s.store.db.ExecContext(ctx,
		`UPDATE items SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCart returns approved items that have not been committed.
func (s *itemStore) ListCart(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE status = ? AND committed = 0 ORDER BY id`,
		string(domain.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("querying cart: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// CommitCart marks all approved, uncommitted items as committed under
// the given batch ID.
func (s *itemStore) CommitCart(ctx context.Context, batchID string) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE items SET committed = 1, commit_batch = ?
		WHERE status = ? AND committed = 0
	`, batchID, string(domain.StatusApproved))
	if err != nil {
		return 0, fmt.Errorf("committing cart: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking commit result: %w", err)
	}
	return int(affected), nil
}

// ==================== Embedding Store ====================

// embeddingStore implements driven.EmbeddingStore.
type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// Get retrieves the stored embedding for an item.
func (s *embeddingStore) Get(ctx context.Context, itemID int64) (*domain.EmbeddingRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT model, embedding, updated_at FROM item_embeddings WHERE item_id = ?
	`, itemID)

	var (
		model     string
		blob      []byte
		updatedAt time.Time
	)
	if err := row.Scan(&model, &blob, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading embedding: %w", err)
	}

	vec, err := decodeVector(blob)
	if err != nil {
		return nil, err
	}

	return &domain.EmbeddingRecord{
		ItemID:    itemID,
		Model:     model,
		Vector:    vec,
		UpdatedAt: updatedAt,
	}, nil
}

// Upsert inserts or replaces the record keyed by ItemID. The conflict
// clause makes concurrent writers resolve last-writer-wins without ever
// producing duplicate rows.
func (s *embeddingStore) Upsert(ctx context.Context, rec *domain.EmbeddingRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO item_embeddings (item_id, model, embedding, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			model = excluded.model,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`, rec.ItemID, rec.Model, encodeVector(rec.Vector), rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting embedding: %w", err)
	}
	return nil
}

// LoadPoolExcept returns every stored embedding except the given item's.
// Rows whose payload fails to decode are skipped; a corrupt candidate
// must not abort the whole query.
func (s *embeddingStore) LoadPoolExcept(ctx context.Context, itemID int64) ([]domain.PoolEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT item_id, embedding FROM item_embeddings WHERE item_id != ?
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying embedding pool: %w", err)
	}
	defer rows.Close()

	var pool []domain.PoolEntry //nolint:prealloc // size unknown from query
	skipped := 0
	for rows.Next() {
		var (
			id   int64
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning pool row: %w", err)
		}

		vec, err := decodeVector(blob)
		if err != nil {
			skipped++
			logger.Warn("Skipping corrupt embedding for item %d: %v", id, err)
			continue
		}
		pool = append(pool, domain.PoolEntry{ItemID: id, Vector: vec})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embedding pool: %w", err)
	}
	if skipped > 0 {
		logger.Info("Embedding pool loaded with %d corrupt rows skipped", skipped)
	}
	return pool, nil
}

// ==================== Helpers ====================

// scannable abstracts *sql.Row and *sql.Rows for shared scanning.
type scannable interface {
	Scan(dest ...any) error
}

// scanItem reads one item row.
func scanItem(row scannable) (*domain.Item, error) {
	var (
		item         domain.Item
		source       string
		status       string
		prompt       sql.NullString
		commitBatch  sql.NullString
		committed    int
		choicesJSON  string
		metadataJSON sql.NullString
		createdAt    sql.NullTime
	)

	err := row.Scan(&item.ID, &source, &prompt, &item.Stimulus, &item.Stem,
		&choicesJSON, &item.Answer, &metadataJSON, &status, &committed,
		&commitBatch, &createdAt)
	if err != nil {
		return nil, err
	}

	item.Source = domain.ItemSource(source)
	item.Status = domain.ItemStatus(status)
	item.Committed = committed != 0
	if prompt.Valid {
		item.Prompt = prompt.String
	}
	if commitBatch.Valid {
		item.CommitBatch = commitBatch.String
	}
	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}

	if err := json.Unmarshal([]byte(choicesJSON), &item.Choices); err != nil {
		return nil, fmt.Errorf("unmarshalling choices for item %d: %w", item.ID, err)
	}
	if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &item.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata for item %d: %w", item.ID, err)
		}
	}

	return &item, nil
}

// collectItems drains rows into a slice.
func collectItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// nullString maps "" to NULL for optional columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
