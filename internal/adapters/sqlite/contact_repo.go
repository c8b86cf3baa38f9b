package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ContactRepository implements secondary.ContactRepository with SQLite.
type ContactRepository struct {
	conn Conn
}

// NewContactRepository creates a new SQLite contact repository.
func NewContactRepository(conn Conn) *ContactRepository {
	return &ContactRepository{conn: conn}
}

func (r *ContactRepository) db() *sql.DB {
	return r.conn.DB()
}

const contactSelectCols = "id, client_id, nom, prenom, fonction, telephone, email, notes"

// scanContact scans a contact row into a ContactRecord.
func scanContact(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ContactRecord, error) {
	var fonction, telephone, email, notes sql.NullString

	record := &secondary.ContactRecord{}
	err := scanner.Scan(
		&record.ID, &record.ClientID, &record.Nom, &record.Prenom,
		&fonction, &telephone, &email, &notes,
	)
	if err != nil {
		return nil, err
	}

	record.Fonction = fonction.String
	record.Telephone = telephone.String
	record.Email = email.String
	record.Notes = notes.String
	return record, nil
}

// Create persists a new contact and returns its id.
func (r *ContactRepository) Create(ctx context.Context, contact *secondary.ContactRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO contacts (client_id, nom, prenom, fonction, telephone, email, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		contact.ClientID, contact.Nom, contact.Prenom, nullString(contact.Fonction),
		nullString(contact.Telephone), nullString(contact.Email), nullString(contact.Notes),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Client %d introuvable", contact.ClientID)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create contact")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read contact id")
	}
	return id, nil
}

// GetByID retrieves a contact by its id.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*secondary.ContactRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+contactSelectCols+" FROM contacts WHERE id = ?", id)

	record, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Contact %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get contact")
	}
	return record, nil
}

// ListByClient retrieves a client's contacts ordered by name.
func (r *ContactRepository) ListByClient(ctx context.Context, clientID int64) ([]*secondary.ContactRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		"SELECT "+contactSelectCols+" FROM contacts WHERE client_id = ? ORDER BY nom COLLATE NOCASE, prenom COLLATE NOCASE",
		clientID,
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list contacts")
	}
	defer rows.Close()

	var contacts []*secondary.ContactRecord
	for rows.Next() {
		record, err := scanContact(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan contact")
		}
		contacts = append(contacts, record)
	}

	return contacts, rows.Err()
}

// Update updates an existing contact.
func (r *ContactRepository) Update(ctx context.Context, contact *secondary.ContactRecord) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE contacts SET nom = ?, prenom = ?, fonction = ?, telephone = ?, email = ?, notes = ? WHERE id = ?",
		contact.Nom, contact.Prenom, nullString(contact.Fonction),
		nullString(contact.Telephone), nullString(contact.Email),
		nullString(contact.Notes), contact.ID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to update contact")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contact %d introuvable", contact.ID)
	}
	return nil
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete contact")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contact %d introuvable", id)
	}
	return nil
}

// ClientExists checks if a client exists.
func (r *ContactRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
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
