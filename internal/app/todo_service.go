package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/budgetctl/internal/core/contrat"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// TodoPriorites is the accepted domain of todo priorities.
var TodoPriorites = []string{"Basse", "Normale", "Haute", "Urgente"}

// TodoServiceImpl implements the TodoService interface.
type TodoServiceImpl struct {
	todoRepo    secondary.TodoRepository
	contratRepo secondary.ContratRepository
	now         func() time.Time
}

// NewTodoService creates a new TodoService with injected dependencies.
func NewTodoService(
	todoRepo secondary.TodoRepository,
	contratRepo secondary.ContratRepository,
) *TodoServiceImpl {
	return &TodoServiceImpl{
		todoRepo:    todoRepo,
		contratRepo: contratRepo,
		now:         time.Now,
	}
}

// CreateTodo creates a new todo item.
func (s *TodoServiceImpl) CreateTodo(ctx context.Context, req primary.CreateTodoRequest) (*primary.Todo, error) {
	if v := validate.Required(req.Motif, "motif"); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}

	priorite := req.Priorite
	if priorite == "" {
		priorite = "Normale"
	}
	if v := validate.OneOf(priorite, "Priorité", TodoPriorites); !v.OK {
		return nil, fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if _, err := parseDate(req.DateEcheance, "date_echeance"); err != nil {
		return nil, err
	}

	if req.ContratID != 0 {
		exists, err := s.todoRepo.ContratExists(ctx, req.ContratID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fault.New(fault.KindNotFound, "Contrat %d introuvable", req.ContratID)
		}
	}

	id, err := s.todoRepo.Create(ctx, &secondary.TodoRecord{
		Motif:        req.Motif,
		Description:  req.Description,
		ContratID:    req.ContratID,
		DateEcheance: req.DateEcheance,
		Priorite:     priorite,
	})
	if err != nil {
		return nil, err
	}

	return s.GetTodo(ctx, id)
}

// GetTodo retrieves a todo by id.
func (s *TodoServiceImpl) GetTodo(ctx context.Context, id int64) (*primary.Todo, error) {
	record, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToTodo(record), nil
}

// ListTodos lists todos, most urgent first.
func (s *TodoServiceImpl) ListTodos(ctx context.Context, filters primary.TodoFilters) ([]*primary.Todo, error) {
	records, err := s.todoRepo.List(ctx, secondary.TodoFilters{
		Complete:  filters.Complete,
		ContratID: filters.ContratID,
	})
	if err != nil {
		return nil, err
	}

	todos := make([]*primary.Todo, len(records))
	for i, r := range records {
		todos[i] = recordToTodo(r)
	}
	return todos, nil
}

// UpdateTodo updates an existing todo.
func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, req primary.UpdateTodoRequest) (*primary.Todo, error) {
	record, err := s.todoRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Motif != nil {
		if v := validate.Required(*req.Motif, "motif"); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Motif = *req.Motif
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.DateEcheance != nil {
		if _, err := parseDate(*req.DateEcheance, "date_echeance"); err != nil {
			return nil, err
		}
		record.DateEcheance = *req.DateEcheance
	}
	if req.Priorite != nil {
		if v := validate.OneOf(*req.Priorite, "Priorité", TodoPriorites); !v.OK {
			return nil, fault.New(fault.KindValidation, "%s", v.Reason)
		}
		record.Priorite = *req.Priorite
	}

	if err := s.todoRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetTodo(ctx, req.ID)
}

// CompleteTodo marks a todo as done.
func (s *TodoServiceImpl) CompleteTodo(ctx context.Context, id int64) error {
	return s.todoRepo.SetComplete(ctx, id, true)
}

// ReopenTodo reverses completion.
func (s *TodoServiceImpl) ReopenTodo(ctx context.Context, id int64) error {
	return s.todoRepo.SetComplete(ctx, id, false)
}

// DeleteTodo deletes a todo.
func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	return s.todoRepo.Delete(ctx, id)
}

// SyncFromContrats creates renewal todos for contracts expiring within
// the threshold that have no open todo yet. Re-running never duplicates.
func (s *TodoServiceImpl) SyncFromContrats(ctx context.Context, thresholdMonths int) (*primary.TodoSyncResult, error) {
	if thresholdMonths <= 0 {
		thresholdMonths = contrat.ExpiryWindowMonths
	}

	records, err := s.contratRepo.List(ctx, secondary.ContratFilters{})
	if err != nil {
		return nil, err
	}

	today := s.now()
	result := &primary.TodoSyncResult{}

	for _, r := range records {
		fin, err := parseDate(r.DateFin, "date_fin")
		if err != nil {
			return nil, err
		}
		if !contrat.ExpiresWithin(r.Resilie, fin, today, thresholdMonths) {
			continue
		}

		hasOpen, err := s.todoRepo.HasOpenForContrat(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if hasOpen {
			result.Skipped++
			continue
		}

		if _, err := s.todoRepo.Create(ctx, &secondary.TodoRecord{
			Motif:        fmt.Sprintf("Renouveler le contrat %s", r.Numero),
			Description:  fmt.Sprintf("Le contrat %s arrive à échéance le %s", r.Numero, r.DateFin),
			ContratID:    r.ID,
			DateEcheance: r.DateFin,
			Priorite:     "Haute",
		}); err != nil {
			return nil, err
		}
		result.Created++
	}

	return result, nil
}

// recordToTodo converts a storage record to the primary port type.
func recordToTodo(r *secondary.TodoRecord) *primary.Todo {
	return &primary.Todo{
		ID:             r.ID,
		Motif:          r.Motif,
		Description:    r.Description,
		ContratID:      r.ContratID,
		DateEcheance:   r.DateEcheance,
		Priorite:       r.Priorite,
		Complete:       r.Complete,
		DateCompletion: r.DateCompletion,
	}
}
