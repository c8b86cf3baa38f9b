package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// TodoRepository implements secondary.TodoRepository with SQLite.
type TodoRepository struct {
	conn Conn
}

// NewTodoRepository creates a new SQLite todo repository.
func NewTodoRepository(conn Conn) *TodoRepository {
	return &TodoRepository{conn: conn}
}

func (r *TodoRepository) db() *sql.DB {
	return r.conn.DB()
}

const todoSelectCols = "id, motif, description, contrat_id, date_echeance, priorite, complete, date_completion"

// scanTodo scans a todo row into a TodoRecord.
func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TodoRecord, error) {
	var (
		desc           sql.NullString
		contratID      sql.NullInt64
		dateEcheance   sql.NullString
		dateCompletion sql.NullTime
	)

	record := &secondary.TodoRecord{}
	err := scanner.Scan(
		&record.ID, &record.Motif, &desc, &contratID, &dateEcheance,
		&record.Priorite, &record.Complete, &dateCompletion,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.ContratID = contratID.Int64
	record.DateEcheance = dateEcheance.String
	if dateCompletion.Valid {
		record.DateCompletion = dateCompletion.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new todo and returns its id.
func (r *TodoRepository) Create(ctx context.Context, todo *secondary.TodoRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO todo_list (motif, description, contrat_id, date_echeance, priorite) VALUES (?, ?, ?, ?, ?)",
		todo.Motif, nullString(todo.Description), nullID(todo.ContratID),
		nullString(todo.DateEcheance), todo.Priorite,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Contrat %d introuvable", todo.ContratID)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create todo")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read todo id")
	}
	return id, nil
}

// GetByID retrieves a todo by its id.
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*secondary.TodoRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+todoSelectCols+" FROM todo_list WHERE id = ?", id)

	record, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get todo")
	}
	return record, nil
}

// List retrieves todos matching the filters, most urgent first then by
// due date, NULL due dates last.
func (r *TodoRepository) List(ctx context.Context, filters secondary.TodoFilters) ([]*secondary.TodoRecord, error) {
	query := "SELECT " + todoSelectCols + " FROM todo_list WHERE 1=1"
	args := []any{}

	if filters.Complete != nil {
		query += " AND complete = ?"
		args = append(args, *filters.Complete)
	}

	if filters.ContratID != 0 {
		query += " AND contrat_id = ?"
		args = append(args, filters.ContratID)
	}

	query += ` ORDER BY CASE priorite
		WHEN 'Urgente' THEN 0 WHEN 'Haute' THEN 1 WHEN 'Normale' THEN 2 ELSE 3 END,
		date_echeance IS NULL, date_echeance ASC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list todos")
	}
	defer rows.Close()

	var todos []*secondary.TodoRecord
	for rows.Next() {
		record, err := scanTodo(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan todo")
		}
		todos = append(todos, record)
	}

	return todos, rows.Err()
}

// Update updates an existing todo.
func (r *TodoRepository) Update(ctx context.Context, todo *secondary.TodoRecord) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE todo_list SET motif = ?, description = ?, date_echeance = ?, priorite = ? WHERE id = ?",
		todo.Motif, nullString(todo.Description), nullString(todo.DateEcheance),
		todo.Priorite, todo.ID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to update todo")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", todo.ID)
	}
	return nil
}

// SetComplete flips completion; the completion date follows the flag.
func (r *TodoRepository) SetComplete(ctx context.Context, id int64, complete bool) error {
	var res sql.Result
	var err error
	if complete {
		res, err = r.db().ExecContext(ctx,
			"UPDATE todo_list SET complete = 1, date_completion = CURRENT_TIMESTAMP WHERE id = ?", id)
	} else {
		res, err = r.db().ExecContext(ctx,
			"UPDATE todo_list SET complete = 0, date_completion = NULL WHERE id = ?", id)
	}
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to set todo completion")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
	}
	return nil
}

// Delete removes a todo.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM todo_list WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete todo")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
	}
	return nil
}

// HasOpenForContrat reports whether an incomplete todo already
// references the contract.
func (r *TodoRepository) HasOpenForContrat(ctx context.Context, contratID int64) (bool, error) {
	var one int
	err := r.db().QueryRowContext(ctx,
		"SELECT 1 FROM todo_list WHERE contrat_id = ? AND complete = 0 LIMIT 1", contratID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.Wrap(fault.KindStorage, err, "failed to check open todos")
	}
	return true, nil
}

// ContratExists checks if a contract exists.
func (r *TodoRepository) ContratExists(ctx context.Context, contratID int64) (bool, error) {
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
