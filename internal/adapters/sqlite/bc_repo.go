package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/budgetctl/internal/core/bc"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// BonCommandeRepository implements secondary.BonCommandeRepository with
// SQLite. Validation runs in a single transaction so the availability
// check and the status flip cannot interleave with another writer.
type BonCommandeRepository struct {
	conn Conn
}

// NewBonCommandeRepository creates a new SQLite BC repository.
func NewBonCommandeRepository(conn Conn) *BonCommandeRepository {
	return &BonCommandeRepository{conn: conn}
}

func (r *BonCommandeRepository) db() *sql.DB {
	return r.conn.DB()
}

const bcSelectCols = "id, numero_bc, budget_id, contrat_id, type, service_demandeur, montant, valide, date_creation, date_validation, description"

// scanBonCommande scans a BC row into a BonCommandeRecord.
func scanBonCommande(scanner interface {
	Scan(dest ...any) error
}) (*secondary.BonCommandeRecord, error) {
	var (
		contratID        sql.NullInt64
		serviceDemandeur sql.NullString
		dateCreation     sql.NullTime
		dateValidation   sql.NullTime
		desc             sql.NullString
	)

	record := &secondary.BonCommandeRecord{}
	err := scanner.Scan(
		&record.ID, &record.Numero, &record.BudgetID, &contratID,
		&record.Type, &serviceDemandeur, &record.Montant, &record.Valide,
		&dateCreation, &dateValidation, &desc,
	)
	if err != nil {
		return nil, err
	}

	record.ContratID = contratID.Int64
	record.ServiceDemandeur = serviceDemandeur.String
	record.Description = desc.String
	if dateCreation.Valid {
		record.DateCreation = dateCreation.Time.Format(time.RFC3339)
	}
	if dateValidation.Valid {
		record.DateValidation = dateValidation.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new draft BC and returns its id.
func (r *BonCommandeRepository) Create(ctx context.Context, bc *secondary.BonCommandeRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO bons_commande (numero_bc, budget_id, contrat_id, type, service_demandeur, montant, description) VALUES (?, ?, ?, ?, ?, ?, ?)",
		bc.Numero, bc.BudgetID, nullID(bc.ContratID), bc.Type,
		nullString(bc.ServiceDemandeur), bc.Montant, nullString(bc.Description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.New(fault.KindDuplicate, "Un bon de commande %s existe déjà", bc.Numero)
		}
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Budget ou contrat référencé introuvable")
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create bon de commande")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read bon de commande id")
	}
	return id, nil
}

// GetByID retrieves a BC by its id.
func (r *BonCommandeRepository) GetByID(ctx context.Context, id int64) (*secondary.BonCommandeRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+bcSelectCols+" FROM bons_commande WHERE id = ?", id)

	record, err := scanBonCommande(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Bon de commande %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get bon de commande")
	}
	return record, nil
}

// GetByNumero retrieves a BC by its numero, nil if absent.
func (r *BonCommandeRepository) GetByNumero(ctx context.Context, numero string) (*secondary.BonCommandeRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+bcSelectCols+" FROM bons_commande WHERE numero_bc = ?", numero)

	record, err := scanBonCommande(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get bon de commande by numero")
	}
	return record, nil
}

// List retrieves BCs matching the filters, numero descending so the
// most recent come first.
func (r *BonCommandeRepository) List(ctx context.Context, filters secondary.BonCommandeFilters) ([]*secondary.BonCommandeRecord, error) {
	query := "SELECT " + bcSelectCols + " FROM bons_commande WHERE 1=1"
	args := []any{}

	if filters.Valide != nil {
		query += " AND valide = ?"
		args = append(args, *filters.Valide)
	}

	if filters.BudgetID != 0 {
		query += " AND budget_id = ?"
		args = append(args, filters.BudgetID)
	}

	if filters.Annee != 0 {
		query += " AND numero_bc LIKE ?"
		args = append(args, fmt.Sprintf("BC-%04d-%%", filters.Annee))
	}

	query += " ORDER BY numero_bc DESC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list bons de commande")
	}
	defer rows.Close()

	var bcs []*secondary.BonCommandeRecord
	for rows.Next() {
		record, err := scanBonCommande(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan bon de commande")
		}
		bcs = append(bcs, record)
	}

	return bcs, rows.Err()
}

// Update updates a draft BC. The caller enforces immutability; the
// WHERE clause re-checks it so a validated BC never changes even if a
// stale caller slips through.
func (r *BonCommandeRepository) Update(ctx context.Context, bc *secondary.BonCommandeRecord) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE bons_commande
		 SET contrat_id = ?, type = ?, service_demandeur = ?, montant = ?, description = ?
		 WHERE id = ? AND valide = 0`,
		nullID(bc.ContratID), bc.Type, nullString(bc.ServiceDemandeur),
		bc.Montant, nullString(bc.Description), bc.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fault.New(fault.KindNotFound, "Contrat %d introuvable", bc.ContratID)
		}
		return fault.Wrap(fault.KindStorage, err, "failed to update bon de commande")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable ou déjà validé", bc.ID)
	}
	return nil
}

// Delete removes a draft BC. The WHERE clause re-checks immutability.
func (r *BonCommandeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx,
		"DELETE FROM bons_commande WHERE id = ? AND valide = 0", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete bon de commande")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable ou déjà validé", id)
	}
	return nil
}

// LastNumeroForYear returns the highest numero assigned in a year,
// empty if none. Zero-padded numbering makes lexicographic MAX correct.
func (r *BonCommandeRepository) LastNumeroForYear(ctx context.Context, annee int) (string, error) {
	var numero sql.NullString
	err := r.db().QueryRowContext(ctx,
		"SELECT MAX(numero_bc) FROM bons_commande WHERE numero_bc LIKE ?",
		fmt.Sprintf("BC-%04d-%%", annee),
	).Scan(&numero)
	if err != nil {
		return "", fault.Wrap(fault.KindStorage, err, "failed to get last numero")
	}
	return numero.String, nil
}

// Validate atomically flips a draft BC to validated. The availability
// check and the flip share one transaction; the schema trigger imputes
// the amount to the budget inside the same transaction.
func (r *BonCommandeRepository) Validate(ctx context.Context, id int64) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to begin validation")
	}
	defer tx.Rollback()

	var (
		valide     bool
		montant    float64
		numero     string
		disponible float64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT bc.valide, bc.montant, bc.numero_bc, b.montant_disponible
		 FROM bons_commande bc
		 JOIN budgets b ON b.id = bc.budget_id
		 WHERE bc.id = ?`,
		id,
	).Scan(&valide, &montant, &numero, &disponible)
	if err == sql.ErrNoRows {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable", id)
	}
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to load bon de commande for validation")
	}

	guard := bc.CanValidate(bc.ValidationContext{
		Numero:            numero,
		Valide:            valide,
		Montant:           montant,
		MontantDisponible: disponible,
	})
	if !guard.Allowed {
		kind := fault.KindInsufficientBudget
		if valide {
			kind = fault.KindImmutable
		}
		return fault.New(kind, "%s", guard.Reason)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE bons_commande SET valide = 1 WHERE id = ?", id); err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to validate bon de commande")
	}

	if err := tx.Commit(); err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to commit validation")
	}
	return nil
}

// BudgetExists checks if a budget exists.
func (r *BonCommandeRepository) BudgetExists(ctx context.Context, budgetID int64) (bool, error) {
	var one int
	err := r.db().QueryRowContext(ctx, "SELECT 1 FROM budgets WHERE id = ?", budgetID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.Wrap(fault.KindStorage, err, "failed to check budget")
	}
	return true, nil
}

// ContratExists checks if a contract exists.
func (r *BonCommandeRepository) ContratExists(ctx context.Context, contratID int64) (bool, error) {
	var one int
	err := r.db().QueryRowContext(ctx, "SELECT 1 FROM contrats WHERE id = ?", contratID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.Wrap(fault.KindStorage, err, "failed to check contrat")
	}
	return true, nil
}

// StatsForYear aggregates BC counts and amounts per nature and
// validation state for a year.
func (r *BonCommandeRepository) StatsForYear(ctx context.Context, annee int) ([]*secondary.BonCommandeStat, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT b.nature, bc.valide, COUNT(*), COALESCE(SUM(bc.montant), 0)
		 FROM bons_commande bc
		 JOIN budgets b ON b.id = bc.budget_id
		 WHERE bc.numero_bc LIKE ?
		 GROUP BY b.nature, bc.valide
		 ORDER BY b.nature, bc.valide`,
		fmt.Sprintf("BC-%04d-%%", annee),
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to aggregate bons de commande")
	}
	defer rows.Close()

	var stats []*secondary.BonCommandeStat
	for rows.Next() {
		stat := &secondary.BonCommandeStat{}
		if err := rows.Scan(&stat.Nature, &stat.Valide, &stat.Count, &stat.TotalMontant); err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan stat")
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
