// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() to ensure tests
// run against the authoritative schema, preventing drift between test
// and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use
// setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/budgetctl/internal/db"
)

// testConn adapts a raw *sql.DB to the sqlite.Conn interface the
// repositories resolve their handle through.
type testConn struct {
	db *sql.DB
}

func (c testConn) DB() *sql.DB { return c.db }

// setupTestDB creates an in-memory database with the authoritative
// schema and foreign keys on, matching the production store.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedClient inserts a test client and returns its id.
func seedClient(t *testing.T, db *sql.DB, nom string) int64 {
	t.Helper()
	if nom == "" {
		nom = "ACME"
	}
	res, err := db.Exec("INSERT INTO clients (nom) VALUES (?)", nom)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedContact inserts a test contact and returns its id.
func seedContact(t *testing.T, db *sql.DB, clientID int64, nom string) int64 {
	t.Helper()
	if nom == "" {
		nom = "Durand"
	}
	res, err := db.Exec("INSERT INTO contacts (client_id, nom, prenom) VALUES (?, ?, 'Marie')", clientID, nom)
	if err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedContrat inserts a test contract and returns its id.
func seedContrat(t *testing.T, db *sql.DB, clientID int64, numero, dateFin string) int64 {
	t.Helper()
	if numero == "" {
		numero = "CT-2026-001"
	}
	res, err := db.Exec(
		"INSERT INTO contrats (numero_contrat, client_id, date_debut, date_fin, montant) VALUES (?, ?, '2026-01-01', ?, 12000)",
		numero, clientID, sql.NullString{String: dateFin, Valid: dateFin != ""},
	)
	if err != nil {
		t.Fatalf("failed to seed contrat: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedBudget inserts a test budget and returns its id. The insert
// trigger derives montant_disponible.
func seedBudget(t *testing.T, db *sql.DB, annee int, nature string, initial float64) int64 {
	t.Helper()
	if nature == "" {
		nature = "Fonctionnement"
	}
	res, err := db.Exec(
		"INSERT INTO budgets (annee, nature, montant_initial) VALUES (?, ?, ?)",
		annee, nature, initial,
	)
	if err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedBC inserts a test draft BC and returns its id.
func seedBC(t *testing.T, db *sql.DB, budgetID int64, numero string, montant float64) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO bons_commande (numero_bc, budget_id, type, montant) VALUES (?, ?, 'Prestation', ?)",
		numero, budgetID, montant,
	)
	if err != nil {
		t.Fatalf("failed to seed bon de commande: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedProjet inserts a test project and returns its id.
func seedProjet(t *testing.T, db *sql.DB, nom string) int64 {
	t.Helper()
	if nom == "" {
		nom = "Migration ERP"
	}
	res, err := db.Exec("INSERT INTO projets (nom_projet) VALUES (?)", nom)
	if err != nil {
		t.Fatalf("failed to seed projet: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// validateBC flips a seeded BC, letting the schema trigger impute it.
func validateBC(t *testing.T, db *sql.DB, id int64) {
	t.Helper()
	if _, err := db.Exec("UPDATE bons_commande SET valide = 1 WHERE id = ?", id); err != nil {
		t.Fatalf("failed to validate bon de commande: %v", err)
	}
}

// budgetAmounts reads back the ledger columns of a budget.
func budgetAmounts(t *testing.T, db *sql.DB, id int64) (initial, consomme, disponible float64) {
	t.Helper()
	err := db.QueryRow(
		"SELECT montant_initial, montant_consomme, montant_disponible FROM budgets WHERE id = ?", id,
	).Scan(&initial, &consomme, &disponible)
	if err != nil {
		t.Fatalf("failed to read budget amounts: %v", err)
	}
	return initial, consomme, disponible
}

// numeroBC builds a well-formed numero for tests.
func numeroBC(annee, seq int) string {
	return fmt.Sprintf("BC-%04d-%04d", annee, seq)
}
