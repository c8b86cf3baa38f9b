// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ClientRepository implements secondary.ClientRepository with SQLite.
type ClientRepository struct {
	conn Conn
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(conn Conn) *ClientRepository {
	return &ClientRepository{conn: conn}
}

func (r *ClientRepository) db() *sql.DB {
	return r.conn.DB()
}

const clientSelectCols = "id, nom, raison_sociale, adresse, code_postal, ville, email, telephone, actif, created_at, updated_at"

// scanClient scans a client row into a ClientRecord.
func scanClient(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ClientRecord, error) {
	var (
		raisonSociale sql.NullString
		adresse       sql.NullString
		codePostal    sql.NullString
		ville         sql.NullString
		email         sql.NullString
		telephone     sql.NullString
		createdAt     sql.NullTime
		updatedAt     sql.NullTime
	)

	record := &secondary.ClientRecord{}
	err := scanner.Scan(
		&record.ID, &record.Nom, &raisonSociale, &adresse, &codePostal,
		&ville, &email, &telephone, &record.Actif, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.RaisonSociale = raisonSociale.String
	record.Adresse = adresse.String
	record.CodePostal = codePostal.String
	record.Ville = ville.String
	record.Email = email.String
	record.Telephone = telephone.String
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time.Format(time.RFC3339)
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// nullString maps "" to NULL so empty optional fields stay NULL in the store.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullID maps 0 to NULL for optional foreign keys.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// Create persists a new client and returns its id.
func (r *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO clients (nom, raison_sociale, adresse, code_postal, ville, email, telephone) VALUES (?, ?, ?, ?, ?, ?, ?)",
		client.Nom, nullString(client.RaisonSociale), nullString(client.Adresse),
		nullString(client.CodePostal), nullString(client.Ville),
		nullString(client.Email), nullString(client.Telephone),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.New(fault.KindDuplicate, "Un client nommé %q existe déjà", client.Nom)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create client")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read client id")
	}
	return id, nil
}

// GetByID retrieves a client by its id.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*secondary.ClientRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE id = ?", id)

	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Client %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get client")
	}
	return record, nil
}

// GetByNom retrieves a client by its unique name, nil if absent.
func (r *ClientRepository) GetByNom(ctx context.Context, nom string) (*secondary.ClientRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE nom = ?", nom)

	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get client by nom")
	}
	return record, nil
}

// List retrieves clients matching the given filters, ordered by name.
func (r *ClientRepository) List(ctx context.Context, filters secondary.ClientFilters) ([]*secondary.ClientRecord, error) {
	query := "SELECT " + clientSelectCols + " FROM clients WHERE 1=1"
	args := []any{}

	if !filters.IncludeInactive {
		query += " AND actif = 1"
	}

	query += " ORDER BY nom COLLATE NOCASE ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list clients")
	}
	defer rows.Close()

	var clients []*secondary.ClientRecord
	for rows.Next() {
		record, err := scanClient(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan client")
		}
		clients = append(clients, record)
	}

	return clients, rows.Err()
}

// Update updates an existing client.
func (r *ClientRepository) Update(ctx context.Context, client *secondary.ClientRecord) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE clients SET nom = ?, raison_sociale = ?, adresse = ?, code_postal = ?,
		 ville = ?, email = ?, telephone = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		client.Nom, nullString(client.RaisonSociale), nullString(client.Adresse),
		nullString(client.CodePostal), nullString(client.Ville),
		nullString(client.Email), nullString(client.Telephone), client.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fault.New(fault.KindDuplicate, "Un client nommé %q existe déjà", client.Nom)
		}
		return fault.Wrap(fault.KindStorage, err, "failed to update client")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Client %d introuvable", client.ID)
	}
	return nil
}

// SetActif flips the soft-delete flag.
func (r *ClientRepository) SetActif(ctx context.Context, id int64, actif bool) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE clients SET actif = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		actif, id,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to set client actif")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Client %d introuvable", id)
	}
	return nil
}

// Delete removes a client; contacts and contrats cascade with it.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete client")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Client %d introuvable", id)
	}
	return nil
}

// CountBlockers returns the financial dependents that block deletion:
// validated BCs reached through the client's contrats, and projects
// in "En cours" with a written FAP.
func (r *ClientRepository) CountBlockers(ctx context.Context, id int64) (*secondary.ClientBlockers, error) {
	blockers := &secondary.ClientBlockers{}

	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bons_commande bc
		 JOIN contrats c ON c.id = bc.contrat_id
		 WHERE c.client_id = ? AND bc.valide = 1`,
		id,
	).Scan(&blockers.ValidatedBCs)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to count validated BCs")
	}

	err = r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projets
		 WHERE client_id = ? AND statut = 'En cours' AND fap_redigee = 1`,
		id,
	).Scan(&blockers.ActiveFAPProjets)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to count FAP projects")
	}

	return blockers, nil
}
