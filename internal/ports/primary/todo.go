package primary

import "context"

// TodoService defines the primary port for todo operations.
type TodoService interface {
	// CreateTodo creates a new todo item.
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*Todo, error)

	// GetTodo retrieves a todo by id.
	GetTodo(ctx context.Context, id int64) (*Todo, error)

	// ListTodos lists todos, most urgent first.
	ListTodos(ctx context.Context, filters TodoFilters) ([]*Todo, error)

	// UpdateTodo updates an existing todo.
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*Todo, error)

	// CompleteTodo marks a todo as done and stamps the completion date.
	CompleteTodo(ctx context.Context, id int64) error

	// ReopenTodo reverses completion and clears the completion date.
	ReopenTodo(ctx context.Context, id int64) error

	// DeleteTodo deletes a todo.
	DeleteTodo(ctx context.Context, id int64) error

	// SyncFromContrats creates renewal todos for contracts expiring
	// within the threshold that have no open todo yet. Safe to re-run.
	SyncFromContrats(ctx context.Context, thresholdMonths int) (*TodoSyncResult, error)
}

// Todo represents a todo item in the primary port layer.
type Todo struct {
	ID             int64
	Motif          string
	Description    string
	ContratID      int64
	DateEcheance   string
	Priorite       string
	Complete       bool
	DateCompletion string
}

// CreateTodoRequest contains the data needed to create a todo.
type CreateTodoRequest struct {
	Motif        string
	Description  string
	ContratID    int64 // 0 when unset
	DateEcheance string
	Priorite     string // defaults to "Normale" when empty
}

// UpdateTodoRequest contains the data to update on a todo. Nil fields
// keep their current value.
type UpdateTodoRequest struct {
	ID           int64
	Motif        *string
	Description  *string
	DateEcheance *string
	Priorite     *string
}

// TodoFilters contains filter options for listing todos.
type TodoFilters struct {
	Complete  *bool
	ContratID int64
}

// TodoSyncResult captures the outcome of a contract-driven sync.
type TodoSyncResult struct {
	Created int
	Skipped int // expiring contracts that already had an open todo
}
