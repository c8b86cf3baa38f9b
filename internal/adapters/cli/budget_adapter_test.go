package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/primary"
)

// mockBudgetService implements primary.BudgetService for testing.
type mockBudgetService struct {
	createBudgetFn func(ctx context.Context, req primary.CreateBudgetRequest) (*primary.Budget, error)
	listBudgetsFn  func(ctx context.Context, filters primary.BudgetFilters) ([]*primary.Budget, error)
	getBudgetFn    func(ctx context.Context, id int64) (*primary.Budget, error)
	updateBudgetFn func(ctx context.Context, req primary.UpdateBudgetRequest) (*primary.Budget, error)
	deleteBudgetFn func(ctx context.Context, id int64, force bool) (*primary.DeleteBudgetResult, error)
	carryOverFn    func(ctx context.Context, fromAnnee, toAnnee int) (*primary.CarryOverResult, error)
	statisticsFn   func(ctx context.Context, annee int) (*primary.BudgetStatistics, error)

	lastCreateReq primary.CreateBudgetRequest
	lastUpdateReq primary.UpdateBudgetRequest
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, req primary.CreateBudgetRequest) (*primary.Budget, error) {
	m.lastCreateReq = req
	if m.createBudgetFn != nil {
		return m.createBudgetFn(ctx, req)
	}
	return &primary.Budget{
		ID: 1, Annee: req.Annee, Nature: req.Nature,
		MontantInitial: req.MontantInitial, MontantDisponible: req.MontantInitial,
	}, nil
}

func (m *mockBudgetService) GetBudget(ctx context.Context, id int64) (*primary.Budget, error) {
	if m.getBudgetFn != nil {
		return m.getBudgetFn(ctx, id)
	}
	return &primary.Budget{ID: id, Annee: 2026, Nature: "Fonctionnement", MontantInitial: 10000, MontantConsomme: 4000, MontantDisponible: 6000}, nil
}

func (m *mockBudgetService) GetBudgetByAnneeNature(ctx context.Context, annee int, nature string) (*primary.Budget, error) {
	return &primary.Budget{ID: 1, Annee: annee, Nature: nature}, nil
}

func (m *mockBudgetService) ListBudgets(ctx context.Context, filters primary.BudgetFilters) ([]*primary.Budget, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, req primary.UpdateBudgetRequest) (*primary.Budget, error) {
	m.lastUpdateReq = req
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(ctx, req)
	}
	return &primary.Budget{ID: req.ID, MontantDisponible: 6000}, nil
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id int64, force bool) (*primary.DeleteBudgetResult, error) {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(ctx, id, force)
	}
	return &primary.DeleteBudgetResult{}, nil
}

func (m *mockBudgetService) RecomputeBudget(ctx context.Context, id int64) (*primary.Budget, error) {
	return &primary.Budget{ID: id, MontantConsomme: 4000, MontantDisponible: 6000}, nil
}

func (m *mockBudgetService) CarryOver(ctx context.Context, fromAnnee, toAnnee int) (*primary.CarryOverResult, error) {
	if m.carryOverFn != nil {
		return m.carryOverFn(ctx, fromAnnee, toAnnee)
	}
	if toAnnee == 0 {
		toAnnee = fromAnnee + 1
	}
	return &primary.CarryOverResult{FromAnnee: fromAnnee, ToAnnee: toAnnee}, nil
}

func (m *mockBudgetService) Statistics(ctx context.Context, annee int) (*primary.BudgetStatistics, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn(ctx, annee)
	}
	return &primary.BudgetStatistics{Annee: annee}, nil
}

func TestBudgetAdapter_Create_Success(t *testing.T) {
	mock := &mockBudgetService{}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	err := adapter.Create(context.Background(), 2026, "Fonctionnement", 10000, "DSI")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if mock.lastCreateReq.Annee != 2026 || mock.lastCreateReq.Nature != "Fonctionnement" {
		t.Errorf("unexpected request: %+v", mock.lastCreateReq)
	}
	if !strings.Contains(buf.String(), "Budget Fonctionnement 2026 créé") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBudgetAdapter_Create_ServiceError(t *testing.T) {
	mock := &mockBudgetService{
		createBudgetFn: func(ctx context.Context, req primary.CreateBudgetRequest) (*primary.Budget, error) {
			return nil, fault.New(fault.KindDuplicate, "Un budget Fonctionnement existe déjà pour 2026")
		},
	}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	err := adapter.Create(context.Background(), 2026, "Fonctionnement", 10000, "")
	if !fault.Is(err, fault.KindDuplicate) {
		t.Errorf("expected duplicate fault passed through, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got %q", buf.String())
	}
}

func TestBudgetAdapter_List_Empty(t *testing.T) {
	mock := &mockBudgetService{}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	if err := adapter.List(context.Background(), 0, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Aucun budget") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBudgetAdapter_List_Table(t *testing.T) {
	mock := &mockBudgetService{
		listBudgetsFn: func(ctx context.Context, filters primary.BudgetFilters) ([]*primary.Budget, error) {
			return []*primary.Budget{
				{ID: 1, Annee: 2026, Nature: "Fonctionnement", MontantInitial: 10000, MontantConsomme: 4000, MontantDisponible: 6000},
				{ID: 2, Annee: 2026, Nature: "Investissement", MontantInitial: 50000, MontantDisponible: 50000},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	if err := adapter.List(context.Background(), 2026, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Fonctionnement") || !strings.Contains(out, "Investissement") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "6000.00") {
		t.Errorf("expected available amount in output: %q", out)
	}
}

func TestBudgetAdapter_Show(t *testing.T) {
	mock := &mockBudgetService{}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	budget, err := adapter.Show(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if budget.ID != 1 {
		t.Errorf("unexpected budget: %+v", budget)
	}
	if !strings.Contains(buf.String(), "Disponible: 6000.00 €") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBudgetAdapter_Update_RequiresAField(t *testing.T) {
	mock := &mockBudgetService{}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	if err := adapter.Update(context.Background(), 1, nil, nil); err == nil {
		t.Error("expected an error when no field is given")
	}
}

func TestBudgetAdapter_Delete_ReportsDraftCleanup(t *testing.T) {
	mock := &mockBudgetService{
		deleteBudgetFn: func(ctx context.Context, id int64, force bool) (*primary.DeleteBudgetResult, error) {
			if !force {
				t.Error("expected force to be passed through")
			}
			return &primary.DeleteBudgetResult{DraftBCsDeleted: 2}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	if err := adapter.Delete(context.Background(), 1, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "2 brouillon(s)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBudgetAdapter_CarryOver(t *testing.T) {
	var gotFrom, gotTo int
	mock := &mockBudgetService{
		carryOverFn: func(ctx context.Context, fromAnnee, toAnnee int) (*primary.CarryOverResult, error) {
			gotFrom, gotTo = fromAnnee, toAnnee
			return &primary.CarryOverResult{
				FromAnnee: fromAnnee,
				ToAnnee:   toAnnee,
				Created:   []*primary.Budget{{Nature: "Fonctionnement", MontantInitial: 3000}},
				Skipped:   []string{"Investissement"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewBudgetAdapter(mock, &buf)

	if err := adapter.CarryOver(context.Background(), 2026, 2028); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotFrom != 2026 || gotTo != 2028 {
		t.Errorf("expected years 2026/2028 forwarded, got %d/%d", gotFrom, gotTo)
	}
	out := buf.String()
	if !strings.Contains(out, "Report 2026 → 2028") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "3000.00 € reportés") || !strings.Contains(out, "Investissement : déjà budgété") {
		t.Errorf("unexpected output: %q", out)
	}
}
