// Package sqlite keeps a local queryable catalog of accepted CVEs
// alongside the flat export file.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/recon-agent/cvekb/internal/cvejson"
	"github.com/recon-agent/cvekb/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS cve_records (
	cve_id TEXT PRIMARY KEY,
	vendor TEXT,
	product TEXT,
	description TEXT,
	severity TEXT NOT NULL,
	base_score REAL,
	attack_vector TEXT NOT NULL,
	exploit_available INTEGER NOT NULL DEFAULT 0,
	patch_available INTEGER NOT NULL DEFAULT 0,
	published_date TEXT,
	refs TEXT,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cve_vendor_product ON cve_records(vendor, product);
CREATE INDEX IF NOT EXISTS idx_cve_severity ON cve_records(severity);
`

// Entry is one catalog row. Vendor/product hold the first affected
// pair; the full reference list is stored as JSON.
type Entry struct {
	CVEID            string
	Vendor           string
	Product          string
	Description      string
	Severity         string
	BaseScore        *float64
	AttackVector     string
	ExploitAvailable bool
	PatchAvailable   bool
	PublishedDate    string
	References       []string
}

// EntryFromRecord maps a normalized record onto a catalog row.
func EntryFromRecord(r *cvejson.Record) Entry {
	e := Entry{
		CVEID:            r.ID,
		Description:      r.Description,
		Severity:         r.Severity.String(),
		BaseScore:        r.BaseScore,
		AttackVector:     r.AttackVector.String(),
		ExploitAvailable: r.ExploitAvailable,
		PatchAvailable:   r.PatchAvailable,
		PublishedDate:    r.PublishedDate,
	}
	if len(r.Products) > 0 {
		e.Vendor = r.Products[0].Vendor
		e.Product = r.Products[0].Product
	}
	for _, ref := range r.References {
		e.References = append(e.References, ref.URL)
	}
	return e
}

type Catalog struct {
	db *sql.DB
}

func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize catalog schema: %w", err)
	}
	logger.Debug("catalog opened", zap.String("path", path))
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert inserts or replaces one entry, keyed by CVE ID.
func (c *Catalog) Upsert(e Entry) error {
	refsJSON, err := json.Marshal(e.References)
	if err != nil {
		return fmt.Errorf("cannot encode references for %s: %w", e.CVEID, err)
	}

	query := `
		INSERT INTO cve_records (cve_id, vendor, product, description, severity,
			base_score, attack_vector, exploit_available, patch_available,
			published_date, refs, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cve_id) DO UPDATE SET
			vendor = excluded.vendor,
			product = excluded.product,
			description = excluded.description,
			severity = excluded.severity,
			base_score = excluded.base_score,
			attack_vector = excluded.attack_vector,
			exploit_available = excluded.exploit_available,
			patch_available = excluded.patch_available,
			published_date = excluded.published_date,
			refs = excluded.refs,
			updated_at = excluded.updated_at
	`

	var score sql.NullFloat64
	if e.BaseScore != nil {
		score = sql.NullFloat64{Float64: *e.BaseScore, Valid: true}
	}

	_, err = c.db.Exec(query,
		e.CVEID,
		e.Vendor,
		e.Product,
		e.Description,
		e.Severity,
		score,
		e.AttackVector,
		boolToInt(e.ExploitAvailable),
		boolToInt(e.PatchAvailable),
		e.PublishedDate,
		string(refsJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cannot upsert %s: %w", e.CVEID, err)
	}
	return nil
}

// Get returns the entry for a CVE ID, or nil when absent.
func (c *Catalog) Get(cveID string) (*Entry, error) {
	query := `
		SELECT cve_id, vendor, product, description, severity, base_score,
			attack_vector, exploit_available, patch_available, published_date, refs
		FROM cve_records WHERE cve_id = ?
	`

	var (
		e        Entry
		score    sql.NullFloat64
		exploit  int
		patch    int
		refsJSON string
	)
	err := c.db.QueryRow(query, cveID).Scan(
		&e.CVEID, &e.Vendor, &e.Product, &e.Description, &e.Severity,
		&score, &e.AttackVector, &exploit, &patch, &e.PublishedDate, &refsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", cveID, err)
	}

	if score.Valid {
		v := score.Float64
		e.BaseScore = &v
	}
	e.ExploitAvailable = exploit != 0
	e.PatchAvailable = patch != 0
	if refsJSON != "" {
		if err := json.Unmarshal([]byte(refsJSON), &e.References); err != nil {
			return nil, fmt.Errorf("corrupt reference list for %s: %w", cveID, err)
		}
	}
	return &e, nil
}

func (c *Catalog) Count() (int, error) {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM cve_records").Scan(&count); err != nil {
		return 0, fmt.Errorf("cannot count catalog records: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
