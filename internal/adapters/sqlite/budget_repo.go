package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// BudgetRepository implements secondary.BudgetRepository with SQLite.
type BudgetRepository struct {
	conn Conn
}

// NewBudgetRepository creates a new SQLite budget repository.
func NewBudgetRepository(conn Conn) *BudgetRepository {
	return &BudgetRepository{conn: conn}
}

func (r *BudgetRepository) db() *sql.DB {
	return r.conn.DB()
}

const budgetSelectCols = "id, annee, nature, montant_initial, montant_consomme, montant_disponible, service_demandeur"

// scanBudget scans a budget row into a BudgetRecord.
func scanBudget(scanner interface {
	Scan(dest ...any) error
}) (*secondary.BudgetRecord, error) {
	var serviceDemandeur sql.NullString

	record := &secondary.BudgetRecord{}
	err := scanner.Scan(
		&record.ID, &record.Annee, &record.Nature, &record.MontantInitial,
		&record.MontantConsomme, &record.MontantDisponible, &serviceDemandeur,
	)
	if err != nil {
		return nil, err
	}

	record.ServiceDemandeur = serviceDemandeur.String
	return record, nil
}

// Create persists a new budget and returns its id. The insert trigger
// derives montant_disponible from the allocation.
func (r *BudgetRepository) Create(ctx context.Context, budget *secondary.BudgetRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO budgets (annee, nature, montant_initial, service_demandeur) VALUES (?, ?, ?, ?)",
		budget.Annee, budget.Nature, budget.MontantInitial, nullString(budget.ServiceDemandeur),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.New(fault.KindDuplicate, "Un budget %s existe déjà pour %d", budget.Nature, budget.Annee)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create budget")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read budget id")
	}
	return id, nil
}

// GetByID retrieves a budget by its id.
func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*secondary.BudgetRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+budgetSelectCols+" FROM budgets WHERE id = ?", id)

	record, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Budget %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get budget")
	}
	return record, nil
}

// GetByAnneeNature retrieves the budget for a (year, nature), nil if absent.
func (r *BudgetRepository) GetByAnneeNature(ctx context.Context, annee int, nature string) (*secondary.BudgetRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+budgetSelectCols+" FROM budgets WHERE annee = ? AND nature = ?", annee, nature)

	record, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get budget by annee/nature")
	}
	return record, nil
}

// List retrieves budgets matching the filters, newest year first.
func (r *BudgetRepository) List(ctx context.Context, filters secondary.BudgetFilters) ([]*secondary.BudgetRecord, error) {
	query := "SELECT " + budgetSelectCols + " FROM budgets WHERE 1=1"
	args := []any{}

	if filters.Annee != 0 {
		query += " AND annee = ?"
		args = append(args, filters.Annee)
	}

	if filters.Nature != "" {
		query += " AND nature = ?"
		args = append(args, filters.Nature)
	}

	query += " ORDER BY annee DESC, nature ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list budgets")
	}
	defer rows.Close()

	var budgets []*secondary.BudgetRecord
	for rows.Next() {
		record, err := scanBudget(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan budget")
		}
		budgets = append(budgets, record)
	}

	return budgets, rows.Err()
}

// Update updates the allocation and descriptive fields of a budget.
// The available amount is rebuilt from the new allocation and the
// already-consumed amount in the same statement.
func (r *BudgetRepository) Update(ctx context.Context, budget *secondary.BudgetRecord) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE budgets
		 SET montant_initial = ?, service_demandeur = ?,
		     montant_disponible = ? - montant_consomme
		 WHERE id = ?`,
		budget.MontantInitial, nullString(budget.ServiceDemandeur),
		budget.MontantInitial, budget.ID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to update budget")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", budget.ID)
	}
	return nil
}

// Delete removes a budget.
func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete budget")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", id)
	}
	return nil
}

// RecomputeAvailable rebuilds montant_consomme and montant_disponible
// from the validated BCs. One statement, idempotent.
func (r *BudgetRepository) RecomputeAvailable(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE budgets
		 SET montant_consomme = COALESCE(
		         (SELECT SUM(montant) FROM bons_commande WHERE budget_id = budgets.id AND valide = 1), 0),
		     montant_disponible = montant_initial - COALESCE(
		         (SELECT SUM(montant) FROM bons_commande WHERE budget_id = budgets.id AND valide = 1), 0)
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to recompute budget")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", id)
	}
	return nil
}

// CountBCs returns the validated and draft BC counts for a budget.
func (r *BudgetRepository) CountBCs(ctx context.Context, budgetID int64) (validated, draft int, err error) {
	err = r.db().QueryRowContext(ctx,
		`SELECT
		     COALESCE(SUM(CASE WHEN valide = 1 THEN 1 ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN valide = 0 THEN 1 ELSE 0 END), 0)
		 FROM bons_commande WHERE budget_id = ?`,
		budgetID,
	).Scan(&validated, &draft)
	if err != nil {
		return 0, 0, fault.Wrap(fault.KindStorage, err, "failed to count BCs")
	}
	return validated, draft, nil
}

// DeleteDraftBCs removes the draft BCs attached to a budget.
func (r *BudgetRepository) DeleteDraftBCs(ctx context.Context, budgetID int64) (int, error) {
	res, err := r.db().ExecContext(ctx,
		"DELETE FROM bons_commande WHERE budget_id = ? AND valide = 0", budgetID)
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to delete draft BCs")
	}

	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// ListLowAvailability retrieves the year's budgets whose available
// amount fell under ratio × allocation, most depleted first.
func (r *BudgetRepository) ListLowAvailability(ctx context.Context, annee int, ratio float64) ([]*secondary.BudgetRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+budgetSelectCols+` FROM budgets
		 WHERE annee = ? AND montant_initial > 0 AND montant_disponible < montant_initial * ?
		 ORDER BY montant_disponible / montant_initial ASC`,
		annee, ratio,
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list depleted budgets")
	}
	defer rows.Close()

	var budgets []*secondary.BudgetRecord
	for rows.Next() {
		record, err := scanBudget(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan budget")
		}
		budgets = append(budgets, record)
	}

	return budgets, rows.Err()
}
