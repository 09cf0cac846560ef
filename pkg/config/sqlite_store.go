package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mtaheri/trftun/pkg/logging"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is where the tunnel registry lives alongside the Traefik
// configuration it feeds.
const DefaultDBPath = "/etc/traefik/trftun.db"

// SQLiteTunnelStore manages the collection of Tunnels using SQLite
type SQLiteTunnelStore struct {
	db     *sql.DB
	mutex  sync.RWMutex // For thread-safe access
	dbPath string
}

// NewSQLiteTunnelStore creates and initializes a new SQLite-based tunnel
// store at dbPath, creating the parent directory if needed.
func NewSQLiteTunnelStore(dbPath string) (*SQLiteTunnelStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteTunnelStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.LogDebug("SQLite tunnel store initialized at: %s", dbPath)
	return store, nil
}

// initializeSchema creates the database tables and indexes
func (ts *SQLiteTunnelStore) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tunnels (
		id TEXT PRIMARY KEY,
		frontend_port INTEGER UNIQUE NOT NULL,
		backend_host TEXT NOT NULL,
		backend_port INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tunnels_frontend_port ON tunnels(frontend_port);
	`

	_, err := ts.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (ts *SQLiteTunnelStore) Close() error {
	if ts.db != nil {
		return ts.db.Close()
	}
	return nil
}

// Add adds a new tunnel
func (ts *SQLiteTunnelStore) Add(t Tunnel) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	query := `
		INSERT INTO tunnels (id, frontend_port, backend_host, backend_port)
		VALUES (?, ?, ?, ?)
	`

	_, err := ts.db.Exec(query, t.ID, t.FrontendPort, t.BackendHost, t.BackendPort)
	if err != nil {
		return fmt.Errorf("failed to add tunnel: %w", err)
	}

	logging.LogDebug("Added tunnel: %s -> %s", t.ID, t.Backend())
	return nil
}

// GetAll returns all tunnels ordered by frontend port
func (ts *SQLiteTunnelStore) GetAll() []Tunnel {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	query := `SELECT id, frontend_port, backend_host, backend_port FROM tunnels ORDER BY frontend_port`

	rows, err := ts.db.Query(query)
	if err != nil {
		logging.LogError("Failed to query tunnels: %v", err)
		return []Tunnel{}
	}
	defer rows.Close()

	var tunnels []Tunnel
	for rows.Next() {
		var t Tunnel
		err := rows.Scan(&t.ID, &t.FrontendPort, &t.BackendHost, &t.BackendPort)
		if err != nil {
			logging.LogError("Failed to scan tunnel row: %v", err)
			continue
		}
		tunnels = append(tunnels, t)
	}

	return tunnels
}

// Len returns the number of tunnels
func (ts *SQLiteTunnelStore) Len() int {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	var count int
	err := ts.db.QueryRow("SELECT COUNT(*) FROM tunnels").Scan(&count)
	if err != nil {
		logging.LogError("Failed to count tunnels: %v", err)
		return 0
	}

	return count
}

// GetByFrontendPort returns the tunnel bound to the given frontend port
func (ts *SQLiteTunnelStore) GetByFrontendPort(port int) (Tunnel, bool) {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	query := `SELECT id, frontend_port, backend_host, backend_port FROM tunnels WHERE frontend_port = ?`

	var t Tunnel
	err := ts.db.QueryRow(query, port).Scan(&t.ID, &t.FrontendPort, &t.BackendHost, &t.BackendPort)
	if err != nil {
		if err == sql.ErrNoRows {
			return Tunnel{}, false
		}
		logging.LogError("Failed to query tunnel by frontend port: %v", err)
		return Tunnel{}, false
	}

	return t, true
}

// Delete removes the tunnel bound to the given frontend port
func (ts *SQLiteTunnelStore) Delete(frontendPort int) error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	result, err := ts.db.Exec("DELETE FROM tunnels WHERE frontend_port = ?", frontendPort)
	if err != nil {
		return fmt.Errorf("failed to delete tunnel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: frontend port %d", ErrTunnelNotFound, frontendPort)
	}

	logging.LogDebug("Deleted tunnel on frontend port %d", frontendPort)
	return nil
}
