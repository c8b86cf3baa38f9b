package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// SauvegardeRepository implements secondary.SauvegardeRepository with
// SQLite.
type SauvegardeRepository struct {
	conn Conn
}

// NewSauvegardeRepository creates a new SQLite backup-record repository.
func NewSauvegardeRepository(conn Conn) *SauvegardeRepository {
	return &SauvegardeRepository{conn: conn}
}

func (r *SauvegardeRepository) db() *sql.DB {
	return r.conn.DB()
}

const sauvegardeSelectCols = "id, nom_fichier, chemin, date_sauvegarde, taille_ko, commentaire"

// scanSauvegarde scans a backup row into a SauvegardeRecord.
func scanSauvegarde(scanner interface {
	Scan(dest ...any) error
}) (*secondary.SauvegardeRecord, error) {
	var (
		date        sql.NullTime
		commentaire sql.NullString
	)

	record := &secondary.SauvegardeRecord{}
	err := scanner.Scan(
		&record.ID, &record.NomFichier, &record.Chemin, &date,
		&record.TailleKo, &commentaire,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		record.DateSauvegarde = date.Time.Format(time.RFC3339)
	}
	record.Commentaire = commentaire.String
	return record, nil
}

// Create records a backup event and returns its id.
func (r *SauvegardeRepository) Create(ctx context.Context, sauvegarde *secondary.SauvegardeRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO sauvegardes (nom_fichier, chemin, taille_ko, commentaire) VALUES (?, ?, ?, ?)",
		sauvegarde.NomFichier, sauvegarde.Chemin, sauvegarde.TailleKo,
		nullString(sauvegarde.Commentaire),
	)
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to record sauvegarde")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read sauvegarde id")
	}
	return id, nil
}

// GetByID retrieves a backup record by its id.
func (r *SauvegardeRepository) GetByID(ctx context.Context, id int64) (*secondary.SauvegardeRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+sauvegardeSelectCols+" FROM sauvegardes WHERE id = ?", id)

	record, err := scanSauvegarde(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Sauvegarde %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get sauvegarde")
	}
	return record, nil
}

// List retrieves backup records, newest first.
func (r *SauvegardeRepository) List(ctx context.Context) ([]*secondary.SauvegardeRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		"SELECT "+sauvegardeSelectCols+" FROM sauvegardes ORDER BY date_sauvegarde DESC, id DESC")
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list sauvegardes")
	}
	defer rows.Close()

	var records []*secondary.SauvegardeRecord
	for rows.Next() {
		record, err := scanSauvegarde(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan sauvegarde")
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Delete removes a backup record.
func (r *SauvegardeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM sauvegardes WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete sauvegarde")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Sauvegarde %d introuvable", id)
	}
	return nil
}
