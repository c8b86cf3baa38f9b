package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_remarques_to_projets",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_service_demandeur_to_bons_commande",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "projets_client_fk_set_null",
		Up:      migrationV3,
	},
}

// RunMigrations applies pending migrations in order. Fresh installs get
// the full SchemaSQL first, so each migration must be a no-op when its
// change is already present.
func RunMigrations(conn *sql.DB) error {
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := conn.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		if err := m.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := conn.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// columnExists checks whether a table already has a column.
func columnExists(conn *sql.DB, table, column string) (bool, error) {
	rows, err := conn.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func migrationV1(conn *sql.DB) error {
	exists, err := columnExists(conn, "projets", "remarques")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = conn.Exec("ALTER TABLE projets ADD COLUMN remarques TEXT")
	return err
}

func migrationV2(conn *sql.DB) error {
	exists, err := columnExists(conn, "bons_commande", "service_demandeur")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = conn.Exec("ALTER TABLE bons_commande ADD COLUMN service_demandeur TEXT")
	return err
}

// fkOnDelete returns the ON DELETE action of a table's foreign key on
// the given column ("NO ACTION" when unspecified), or "" if the column
// carries no foreign key.
func fkOnDelete(conn *sql.DB, table, column string) (string, error) {
	rows, err := conn.Query(fmt.Sprintf("PRAGMA foreign_key_list(%s)", table))
	if err != nil {
		return "", err
	}
	defer rows.Close()

	for rows.Next() {
		var id, seq int
		var refTable, from, onUpdate, onDelete, match string
		var to sql.NullString
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return "", err
		}
		if from == column {
			return onDelete, nil
		}
	}
	return "", rows.Err()
}

// migrationV3 rebuilds projets so that deleting a client unlinks its
// projects instead of tripping the foreign key. SQLite cannot alter a
// foreign key action in place.
func migrationV3(conn *sql.DB) error {
	action, err := fkOnDelete(conn, "projets", "client_id")
	if err != nil {
		return err
	}
	if action == "SET NULL" {
		return nil
	}

	stmts := []string{
		"PRAGMA foreign_keys = OFF",
		`CREATE TABLE projets_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nom_projet TEXT NOT NULL UNIQUE,
			client_id INTEGER,
			fap_redigee INTEGER NOT NULL DEFAULT 0,
			porteur_projet TEXT,
			service_demandeur TEXT,
			date_debut DATE,
			date_fin_estimee DATE,
			date_mise_service DATE,
			remarques TEXT,
			statut TEXT NOT NULL CHECK(statut IN ('En cours', 'Terminé', 'Suspendu')) DEFAULT 'En cours',
			FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE SET NULL
		)`,
		`INSERT INTO projets_new (id, nom_projet, client_id, fap_redigee, porteur_projet,
			service_demandeur, date_debut, date_fin_estimee, date_mise_service, remarques, statut)
		 SELECT id, nom_projet, client_id, fap_redigee, porteur_projet,
			service_demandeur, date_debut, date_fin_estimee, date_mise_service, remarques, statut
		 FROM projets`,
		"DROP TABLE projets",
		"ALTER TABLE projets_new RENAME TO projets",
		"PRAGMA foreign_keys = ON",
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
