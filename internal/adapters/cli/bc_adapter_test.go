package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/primary"
)

// mockBonCommandeService implements primary.BonCommandeService for testing.
type mockBonCommandeService struct {
	createFn   func(ctx context.Context, req primary.CreateBonCommandeRequest) (*primary.BonCommande, error)
	listFn     func(ctx context.Context, filters primary.BonCommandeFilters) ([]*primary.BonCommande, error)
	validateFn func(ctx context.Context, id int64) (*primary.BonCommande, error)
	deleteFn   func(ctx context.Context, id int64) error

	lastCreateReq primary.CreateBonCommandeRequest
}

func (m *mockBonCommandeService) CreateBonCommande(ctx context.Context, req primary.CreateBonCommandeRequest) (*primary.BonCommande, error) {
	m.lastCreateReq = req
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &primary.BonCommande{ID: 1, Numero: "BC-2026-0001", BudgetID: req.BudgetID, Type: req.Type, Montant: req.Montant}, nil
}

func (m *mockBonCommandeService) GetBonCommande(ctx context.Context, id int64) (*primary.BonCommande, error) {
	return &primary.BonCommande{ID: id, Numero: "BC-2026-0001", BudgetID: 1, Type: "Prestation", Montant: 4000}, nil
}

func (m *mockBonCommandeService) GetBonCommandeByNumero(ctx context.Context, numero string) (*primary.BonCommande, error) {
	return &primary.BonCommande{ID: 1, Numero: numero, BudgetID: 1, Type: "Prestation", Montant: 4000, Valide: true, DateValidation: "2026-08-28"}, nil
}

func (m *mockBonCommandeService) ListBonsCommande(ctx context.Context, filters primary.BonCommandeFilters) ([]*primary.BonCommande, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockBonCommandeService) UpdateBonCommande(ctx context.Context, req primary.UpdateBonCommandeRequest) (*primary.BonCommande, error) {
	return &primary.BonCommande{ID: req.ID, Numero: "BC-2026-0001"}, nil
}

func (m *mockBonCommandeService) ValidateBonCommande(ctx context.Context, id int64) (*primary.BonCommande, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, id)
	}
	return &primary.BonCommande{ID: id, Numero: "BC-2026-0001", BudgetID: 1, Montant: 4000, Valide: true}, nil
}

func (m *mockBonCommandeService) DeleteBonCommande(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestBonCommandeAdapter_Create_Success(t *testing.T) {
	mock := &mockBonCommandeService{}
	var buf bytes.Buffer
	adapter := NewBonCommandeAdapter(mock, &buf)

	err := adapter.Create(context.Background(), primary.CreateBonCommandeRequest{
		BudgetID: 1, Type: "Prestation", Montant: 4000,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "BC-2026-0001 créé (brouillon)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBonCommandeAdapter_List_ShowsStatut(t *testing.T) {
	mock := &mockBonCommandeService{
		listFn: func(ctx context.Context, filters primary.BonCommandeFilters) ([]*primary.BonCommande, error) {
			return []*primary.BonCommande{
				{Numero: "BC-2026-0002", Type: "Formation", Montant: 1200, Valide: false},
				{Numero: "BC-2026-0001", Type: "Prestation", Montant: 4000, Valide: true},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewBonCommandeAdapter(mock, &buf)

	if err := adapter.List(context.Background(), primary.BonCommandeFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "brouillon") || !strings.Contains(out, "validé") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestBonCommandeAdapter_Validate_Success(t *testing.T) {
	mock := &mockBonCommandeService{}
	var buf bytes.Buffer
	adapter := NewBonCommandeAdapter(mock, &buf)

	if err := adapter.Validate(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "4000.00 € imputés au budget 1") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestBonCommandeAdapter_Validate_InsufficientBudget(t *testing.T) {
	mock := &mockBonCommandeService{
		validateFn: func(ctx context.Context, id int64) (*primary.BonCommande, error) {
			return nil, fault.New(fault.KindInsufficientBudget,
				"Budget insuffisant pour valider BC-2026-0002 : montant 7000.00 €, disponible 6000.00 €")
		},
	}
	var buf bytes.Buffer
	adapter := NewBonCommandeAdapter(mock, &buf)

	err := adapter.Validate(context.Background(), 2)
	if !fault.Is(err, fault.KindInsufficientBudget) {
		t.Errorf("expected insufficient-budget fault passed through, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got %q", buf.String())
	}
}

func TestBonCommandeAdapter_Show(t *testing.T) {
	mock := &mockBonCommandeService{}
	var buf bytes.Buffer
	adapter := NewBonCommandeAdapter(mock, &buf)

	bc, err := adapter.Show(context.Background(), "BC-2026-0001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bc.Numero != "BC-2026-0001" {
		t.Errorf("unexpected BC: %+v", bc)
	}
	if !strings.Contains(buf.String(), "validé le 2026-08-28") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
