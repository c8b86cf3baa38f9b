package db

// SchemaSQL is the complete schema for fresh budgetctl installs,
// including the two ledger triggers.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All
// repository tests load it via GetSchemaSQL() so that a column drift
// between code and schema fails immediately with "no such column".
//
// When adding columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Clients
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nom TEXT NOT NULL UNIQUE,
	raison_sociale TEXT,
	adresse TEXT,
	code_postal TEXT,
	ville TEXT,
	email TEXT,
	telephone TEXT,
	actif INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Contacts (owned by a client, removed with it)
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL,
	nom TEXT NOT NULL,
	prenom TEXT NOT NULL,
	fonction TEXT,
	telephone TEXT,
	email TEXT,
	notes TEXT,
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

-- Contrats. Only the cancellation marker is persisted; Actif/Expiré is
-- recomputed from date_fin at read time.
CREATE TABLE IF NOT EXISTS contrats (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	numero_contrat TEXT NOT NULL UNIQUE,
	client_id INTEGER NOT NULL,
	contact_id INTEGER,
	date_debut DATE,
	date_fin DATE,
	montant REAL NOT NULL DEFAULT 0,
	description TEXT,
	resilie INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE SET NULL
);

-- Budgets (one envelope per year and nature)
CREATE TABLE IF NOT EXISTS budgets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	annee INTEGER NOT NULL,
	nature TEXT NOT NULL CHECK(nature IN ('Fonctionnement', 'Investissement')),
	montant_initial REAL NOT NULL DEFAULT 0,
	montant_consomme REAL NOT NULL DEFAULT 0,
	montant_disponible REAL NOT NULL DEFAULT 0,
	service_demandeur TEXT,
	UNIQUE(annee, nature)
);

-- Bons de commande (draft until valide=1, then immutable)
CREATE TABLE IF NOT EXISTS bons_commande (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	numero_bc TEXT NOT NULL UNIQUE,
	budget_id INTEGER NOT NULL,
	contrat_id INTEGER,
	type TEXT NOT NULL CHECK(type IN ('Assistance', 'Formation', 'Prestation', 'Matériel', 'Licences')),
	service_demandeur TEXT,
	montant REAL NOT NULL DEFAULT 0,
	valide INTEGER NOT NULL DEFAULT 0,
	date_creation DATETIME DEFAULT CURRENT_TIMESTAMP,
	date_validation DATETIME,
	description TEXT,
	FOREIGN KEY (budget_id) REFERENCES budgets(id),
	FOREIGN KEY (contrat_id) REFERENCES contrats(id) ON DELETE SET NULL
);

-- Projets. Deleting a client keeps its projects, unlinked: only
-- validated BCs and En-cours FAP projects block a client delete, so a
-- bare FK here would reject deletions the guard allows.
CREATE TABLE IF NOT EXISTS projets (
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
);

-- Investissements prévus d'un projet (owned, removed with it)
CREATE TABLE IF NOT EXISTS investissements_projets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	projet_id INTEGER NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('Matériel', 'Licence', 'Installation', 'Formation', 'Accompagnement')),
	description TEXT,
	montant_estime REAL NOT NULL DEFAULT 0,
	FOREIGN KEY (projet_id) REFERENCES projets(id) ON DELETE CASCADE
);

-- Contacts sourcing d'un projet (owned, removed with it)
CREATE TABLE IF NOT EXISTS contacts_sourcing (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	projet_id INTEGER NOT NULL,
	nom TEXT NOT NULL,
	prenom TEXT NOT NULL,
	entreprise TEXT,
	telephone TEXT,
	email TEXT,
	notes TEXT,
	FOREIGN KEY (projet_id) REFERENCES projets(id) ON DELETE CASCADE
);

-- Todo list (optionally linked to a contract)
CREATE TABLE IF NOT EXISTS todo_list (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	motif TEXT NOT NULL,
	description TEXT,
	contrat_id INTEGER,
	date_echeance DATE,
	priorite TEXT NOT NULL CHECK(priorite IN ('Basse', 'Normale', 'Haute', 'Urgente')) DEFAULT 'Normale',
	complete INTEGER NOT NULL DEFAULT 0,
	date_completion DATETIME,
	FOREIGN KEY (contrat_id) REFERENCES contrats(id) ON DELETE SET NULL
);

-- Sauvegardes (backup events, append-only bookkeeping)
CREATE TABLE IF NOT EXISTS sauvegardes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nom_fichier TEXT NOT NULL,
	chemin TEXT NOT NULL,
	date_sauvegarde DATETIME DEFAULT CURRENT_TIMESTAMP,
	taille_ko REAL NOT NULL DEFAULT 0,
	commentaire TEXT
);

CREATE INDEX IF NOT EXISTS idx_contacts_client ON contacts(client_id);
CREATE INDEX IF NOT EXISTS idx_contrats_client ON contrats(client_id);
CREATE INDEX IF NOT EXISTS idx_contrats_dates ON contrats(date_debut, date_fin);
CREATE INDEX IF NOT EXISTS idx_budgets_annee ON budgets(annee);
CREATE INDEX IF NOT EXISTS idx_bc_budget ON bons_commande(budget_id);
CREATE INDEX IF NOT EXISTS idx_bc_valide ON bons_commande(valide);
CREATE INDEX IF NOT EXISTS idx_todo_complete ON todo_list(complete);

-- Trigger 1: a fresh budget starts with disponible = initial - consomme.
CREATE TRIGGER IF NOT EXISTS budget_disponible_initial
AFTER INSERT ON budgets
FOR EACH ROW
BEGIN
	UPDATE budgets
	SET montant_disponible = montant_initial - montant_consomme
	WHERE id = NEW.id;
END;

-- Trigger 2: validating a BC imputes its amount to the owning budget and
-- stamps the validation time. Fires exactly once per draft->validated flip.
CREATE TRIGGER IF NOT EXISTS imputer_bc_au_budget
AFTER UPDATE OF valide ON bons_commande
FOR EACH ROW
WHEN NEW.valide = 1 AND OLD.valide = 0
BEGIN
	UPDATE budgets
	SET montant_consomme = montant_consomme + NEW.montant,
	    montant_disponible = montant_initial - (montant_consomme + NEW.montant)
	WHERE id = NEW.budget_id;

	UPDATE bons_commande
	SET date_validation = CURRENT_TIMESTAMP
	WHERE id = NEW.id;
END;
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
