package db

import "database/sql"

// MigrateUp creates the analysis history schema.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS analyses (
    id             SERIAL PRIMARY KEY,
    source_url     TEXT NOT NULL DEFAULT '',
    query          TEXT NOT NULL,
    verdict        VARCHAR(10) NOT NULL,
    confidence     DOUBLE PRECISION NOT NULL,
    status         VARCHAR(20) NOT NULL,
    reliable_count INTEGER NOT NULL DEFAULT 0,
    summary        TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// retention sweeps and recent-history queries scan by creation time
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_verdict ON analyses(verdict)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// verdict and status are closed sets
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_analyses_verdict'
    ) THEN
        ALTER TABLE analyses ADD CONSTRAINT chk_analyses_verdict
        CHECK (verdict IN ('REAL', 'FAKE', 'UNKNOWN'));
    END IF;
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_analyses_status'
    ) THEN
        ALTER TABLE analyses ADD CONSTRAINT chk_analyses_status
        CHECK (status IN ('VERIFIED_REAL', 'UNVERIFIED', 'ERROR'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the analysis history schema.
// Use with caution: this deletes all stored analyses.
func MigrateDown(db *sql.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_analyses_verdict`,
		`DROP INDEX IF EXISTS idx_analyses_created_at`,
		`DROP TABLE IF EXISTS analyses CASCADE`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
