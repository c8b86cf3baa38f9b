package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/budgetctl/internal/adapters/sqlite"
	"github.com/example/budgetctl/internal/core/bc"
	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

func TestBonCommandeRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)

	id, err := repo.Create(ctx, &secondary.BonCommandeRecord{
		Numero:   numeroBC(2026, 1),
		BudgetID: budgetID,
		Type:     "Formation",
		Montant:  1500,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	bc, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if bc.Valide {
		t.Error("expected a fresh BC to be a draft")
	}
	if bc.DateCreation == "" {
		t.Error("expected date_creation to be stamped")
	}
	if bc.DateValidation != "" {
		t.Errorf("expected empty date_validation, got %q", bc.DateValidation)
	}
}

func TestBonCommandeRepository_Create_DuplicateNumero(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	seedBC(t, db, budgetID, numeroBC(2026, 1), 100)

	_, err := repo.Create(ctx, &secondary.BonCommandeRecord{
		Numero:   numeroBC(2026, 1),
		BudgetID: budgetID,
		Type:     "Assistance",
		Montant:  200,
	})
	if !fault.Is(err, fault.KindDuplicate) {
		t.Errorf("expected duplicate fault, got %v", err)
	}
}

func TestBonCommandeRepository_Validate_ImputesBudget(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	bcID := seedBC(t, db, budgetID, numeroBC(2026, 1), 4000)

	if err := repo.Validate(ctx, bcID); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	_, consomme, disponible := budgetAmounts(t, db, budgetID)
	if consomme != 4000 || disponible != 6000 {
		t.Errorf("expected 4000 consumed / 6000 available, got %.2f/%.2f", consomme, disponible)
	}

	bc, err := repo.GetByID(ctx, bcID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !bc.Valide {
		t.Error("expected BC to be validated")
	}
	if bc.DateValidation == "" {
		t.Error("expected date_validation to be stamped by the trigger")
	}
}

func TestBonCommandeRepository_Validate_InsufficientBudget(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	first := seedBC(t, db, budgetID, numeroBC(2026, 1), 4000)
	if err := repo.Validate(ctx, first); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	over := seedBC(t, db, budgetID, numeroBC(2026, 2), 7000)
	err := repo.Validate(ctx, over)
	if !fault.Is(err, fault.KindInsufficientBudget) {
		t.Fatalf("expected insufficient-budget fault, got %v", err)
	}

	// The refused validation must leave the ledger untouched.
	_, consomme, disponible := budgetAmounts(t, db, budgetID)
	if consomme != 4000 || disponible != 6000 {
		t.Errorf("expected ledger unchanged at 4000/6000, got %.2f/%.2f", consomme, disponible)
	}

	bc, err := repo.GetByID(ctx, over)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if bc.Valide {
		t.Error("expected refused BC to stay a draft")
	}

	// An exact fit passes.
	exact := seedBC(t, db, budgetID, numeroBC(2026, 3), 6000)
	if err := repo.Validate(ctx, exact); err != nil {
		t.Fatalf("exact-fit Validate failed: %v", err)
	}
	_, _, disponible = budgetAmounts(t, db, budgetID)
	if disponible != 0 {
		t.Errorf("expected 0 available after exact fit, got %.2f", disponible)
	}
}

// The refusal wording comes from the core guard, not a second inline
// copy of the rule.
func TestBonCommandeRepository_Validate_RefusalsMatchGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 1000)
	bcID := seedBC(t, db, budgetID, numeroBC(2026, 1), 5000)

	err := repo.Validate(ctx, bcID)
	want := bc.CanValidate(bc.ValidationContext{
		Numero:            numeroBC(2026, 1),
		Montant:           5000,
		MontantDisponible: 1000,
	})
	if err == nil || err.Error() != want.Reason {
		t.Errorf("insufficient refusal = %v, want %q", err, want.Reason)
	}

	validateBC(t, db, seedBC(t, db, budgetID, numeroBC(2026, 2), 100))
	var validatedID int64
	if err := db.QueryRow("SELECT id FROM bons_commande WHERE numero_bc = ?", numeroBC(2026, 2)).Scan(&validatedID); err != nil {
		t.Fatalf("failed to load validated BC: %v", err)
	}

	err = repo.Validate(ctx, validatedID)
	want = bc.CanValidate(bc.ValidationContext{Numero: numeroBC(2026, 2), Valide: true})
	if err == nil || err.Error() != want.Reason {
		t.Errorf("already-validated refusal = %v, want %q", err, want.Reason)
	}
}

func TestBonCommandeRepository_Validate_AlreadyValidated(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	bcID := seedBC(t, db, budgetID, numeroBC(2026, 1), 1000)

	if err := repo.Validate(ctx, bcID); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	err := repo.Validate(ctx, bcID)
	if !fault.Is(err, fault.KindImmutable) {
		t.Errorf("expected immutable fault, got %v", err)
	}

	// No double imputation.
	_, consomme, _ := budgetAmounts(t, db, budgetID)
	if consomme != 1000 {
		t.Errorf("expected single imputation of 1000, got %.2f", consomme)
	}
}

func TestBonCommandeRepository_Validate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})

	err := repo.Validate(context.Background(), 42)
	if !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected not-found fault, got %v", err)
	}
}

func TestBonCommandeRepository_UpdateAndDelete_ImmutabilityBackstop(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	bcID := seedBC(t, db, budgetID, numeroBC(2026, 1), 1000)
	validateBC(t, db, bcID)

	err := repo.Update(ctx, &secondary.BonCommandeRecord{
		ID:       bcID,
		BudgetID: budgetID,
		Type:     "Assistance",
		Montant:  99,
	})
	if !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected validated BC update to be refused, got %v", err)
	}

	if err := repo.Delete(ctx, bcID); !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected validated BC delete to be refused, got %v", err)
	}

	bc, err := repo.GetByID(ctx, bcID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if bc.Montant != 1000 {
		t.Errorf("expected montant untouched at 1000, got %.2f", bc.Montant)
	}
}

func TestBonCommandeRepository_LastNumeroForYear(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budget26 := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	budget27 := seedBudget(t, db, 2027, "Fonctionnement", 10000)

	last, err := repo.LastNumeroForYear(ctx, 2026)
	if err != nil {
		t.Fatalf("LastNumeroForYear failed: %v", err)
	}
	if last != "" {
		t.Errorf("expected empty numero for fresh year, got %q", last)
	}

	seedBC(t, db, budget26, numeroBC(2026, 1), 100)
	seedBC(t, db, budget26, numeroBC(2026, 2), 100)
	seedBC(t, db, budget27, numeroBC(2027, 7), 100)

	last, err = repo.LastNumeroForYear(ctx, 2026)
	if err != nil {
		t.Fatalf("LastNumeroForYear failed: %v", err)
	}
	if last != "BC-2026-0002" {
		t.Errorf("expected BC-2026-0002, got %q", last)
	}
}

func TestBonCommandeRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budget26 := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	budget27 := seedBudget(t, db, 2027, "Fonctionnement", 10000)

	bc1 := seedBC(t, db, budget26, numeroBC(2026, 1), 100)
	seedBC(t, db, budget26, numeroBC(2026, 2), 100)
	seedBC(t, db, budget27, numeroBC(2027, 1), 100)
	validateBC(t, db, bc1)

	valide := true
	validated, err := repo.List(ctx, secondary.BonCommandeFilters{Valide: &valide})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(validated) != 1 || validated[0].Numero != "BC-2026-0001" {
		t.Errorf("expected only BC-2026-0001 validated, got %d entries", len(validated))
	}

	year, err := repo.List(ctx, secondary.BonCommandeFilters{Annee: 2026})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(year) != 2 {
		t.Errorf("expected 2 BCs in 2026, got %d", len(year))
	}
	// Most recent numero first.
	if year[0].Numero != "BC-2026-0002" {
		t.Errorf("expected BC-2026-0002 first, got %q", year[0].Numero)
	}

	budget, err := repo.List(ctx, secondary.BonCommandeFilters{BudgetID: budget27})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(budget) != 1 {
		t.Errorf("expected 1 BC for budget 2027, got %d", len(budget))
	}
}

func TestBonCommandeRepository_StatsForYear(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	fonc := seedBudget(t, db, 2026, "Fonctionnement", 10000)
	inv := seedBudget(t, db, 2026, "Investissement", 50000)

	bc1 := seedBC(t, db, fonc, numeroBC(2026, 1), 1000)
	bc2 := seedBC(t, db, fonc, numeroBC(2026, 2), 2000)
	seedBC(t, db, inv, numeroBC(2026, 3), 5000)
	validateBC(t, db, bc1)
	validateBC(t, db, bc2)

	stats, err := repo.StatsForYear(ctx, 2026)
	if err != nil {
		t.Fatalf("StatsForYear failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(stats))
	}

	// Ordered by nature then valide: Fonctionnement/valide, then
	// Investissement/draft.
	if stats[0].Nature != "Fonctionnement" || !stats[0].Valide || stats[0].Count != 2 || stats[0].TotalMontant != 3000 {
		t.Errorf("unexpected Fonctionnement bucket: %+v", stats[0])
	}
	if stats[1].Nature != "Investissement" || stats[1].Valide || stats[1].TotalMontant != 5000 {
		t.Errorf("unexpected Investissement bucket: %+v", stats[1])
	}
}

func TestBonCommandeRepository_SequentialNumbering(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewBonCommandeRepository(testConn{db})
	ctx := context.Background()

	budgetID := seedBudget(t, db, 2026, "Fonctionnement", 10000)

	for seq := 1; seq <= 3; seq++ {
		last, err := repo.LastNumeroForYear(ctx, 2026)
		if err != nil {
			t.Fatalf("LastNumeroForYear failed: %v", err)
		}
		want := numeroBC(2026, seq)
		if seq == 1 && last != "" {
			t.Fatalf("expected no numero yet, got %q", last)
		}
		if _, err := repo.Create(ctx, &secondary.BonCommandeRecord{
			Numero:   want,
			BudgetID: budgetID,
			Type:     "Prestation",
			Montant:  100,
		}); err != nil {
			t.Fatalf("Create %s failed: %v", want, err)
		}
	}

	last, err := repo.LastNumeroForYear(ctx, 2026)
	if err != nil {
		t.Fatalf("LastNumeroForYear failed: %v", err)
	}
	if last != "BC-2026-0003" {
		t.Errorf("expected BC-2026-0003, got %q", last)
	}
}
