package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ContratRepository implements secondary.ContratRepository with SQLite.
type ContratRepository struct {
	conn Conn
}

// NewContratRepository creates a new SQLite contract repository.
func NewContratRepository(conn Conn) *ContratRepository {
	return &ContratRepository{conn: conn}
}

func (r *ContratRepository) db() *sql.DB {
	return r.conn.DB()
}

const contratSelectCols = "id, numero_contrat, client_id, contact_id, date_debut, date_fin, montant, description, resilie"

// scanContrat scans a contract row into a ContratRecord.
func scanContrat(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ContratRecord, error) {
	var (
		contactID sql.NullInt64
		dateDebut sql.NullString
		dateFin   sql.NullString
		desc      sql.NullString
	)

	record := &secondary.ContratRecord{}
	err := scanner.Scan(
		&record.ID, &record.Numero, &record.ClientID, &contactID,
		&dateDebut, &dateFin, &record.Montant, &desc, &record.Resilie,
	)
	if err != nil {
		return nil, err
	}

	record.ContactID = contactID.Int64
	record.DateDebut = dateDebut.String
	record.DateFin = dateFin.String
	record.Description = desc.String
	return record, nil
}

// Create persists a new contract and returns its id.
func (r *ContratRepository) Create(ctx context.Context, contrat *secondary.ContratRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO contrats (numero_contrat, client_id, contact_id, date_debut, date_fin, montant, description) VALUES (?, ?, ?, ?, ?, ?, ?)",
		contrat.Numero, contrat.ClientID, nullID(contrat.ContactID),
		nullString(contrat.DateDebut), nullString(contrat.DateFin),
		contrat.Montant, nullString(contrat.Description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.New(fault.KindDuplicate, "Un contrat numéro %q existe déjà", contrat.Numero)
		}
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Client ou contact référencé introuvable")
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create contrat")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read contrat id")
	}
	return id, nil
}

// GetByID retrieves a contract by its id.
func (r *ContratRepository) GetByID(ctx context.Context, id int64) (*secondary.ContratRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+contratSelectCols+" FROM contrats WHERE id = ?", id)

	record, err := scanContrat(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get contrat")
	}
	return record, nil
}

// GetByNumero retrieves a contract by its unique number, nil if absent.
func (r *ContratRepository) GetByNumero(ctx context.Context, numero string) (*secondary.ContratRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+contratSelectCols+" FROM contrats WHERE numero_contrat = ?", numero)

	record, err := scanContrat(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get contrat by numero")
	}
	return record, nil
}

// List retrieves contracts matching the filters, soonest-ending first.
// NULL end dates sort last.
func (r *ContratRepository) List(ctx context.Context, filters secondary.ContratFilters) ([]*secondary.ContratRecord, error) {
	query := "SELECT " + contratSelectCols + " FROM contrats WHERE 1=1"
	args := []any{}

	if filters.ClientID != 0 {
		query += " AND client_id = ?"
		args = append(args, filters.ClientID)
	}

	query += " ORDER BY date_fin IS NULL, date_fin ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list contrats")
	}
	defer rows.Close()

	var contrats []*secondary.ContratRecord
	for rows.Next() {
		record, err := scanContrat(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan contrat")
		}
		contrats = append(contrats, record)
	}

	return contrats, rows.Err()
}

// Update updates an existing contract.
func (r *ContratRepository) Update(ctx context.Context, contrat *secondary.ContratRecord) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE contrats SET contact_id = ?, date_debut = ?, date_fin = ?, montant = ?, description = ? WHERE id = ?",
		nullID(contrat.ContactID), nullString(contrat.DateDebut),
		nullString(contrat.DateFin), contrat.Montant,
		nullString(contrat.Description), contrat.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fault.New(fault.KindNotFound, "Contact %d introuvable", contrat.ContactID)
		}
		return fault.Wrap(fault.KindStorage, err, "failed to update contrat")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", contrat.ID)
	}
	return nil
}

// SetResilie marks a contract as explicitly cancelled.
func (r *ContratRepository) SetResilie(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "UPDATE contrats SET resilie = 1 WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to resilier contrat")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
	}
	return nil
}

// Delete removes a contract.
func (r *ContratRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM contrats WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete contrat")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
	}
	return nil
}

// CountBCs returns the number of BCs referencing a contract.
func (r *ContratRepository) CountBCs(ctx context.Context, contratID int64) (int, error) {
	var count int
	err := r.db().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bons_commande WHERE contrat_id = ?", contratID).Scan(&count)
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to count BCs")
	}
	return count, nil
}

// ClientExists checks if a client exists.
func (r *ContratRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var one int
	err := r.db().QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id = ?", clientID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.Wrap(fault.KindStorage, err, "failed to check client")
	}
	return true, nil
}
