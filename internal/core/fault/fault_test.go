package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "direct fault",
			err:  New(KindNotFound, "budget 42 introuvable"),
			want: KindNotFound,
		},
		{
			name: "wrapped fault",
			err:  fmt.Errorf("validation échouée: %w", New(KindInsufficientBudget, "montant trop élevé")),
			want: KindInsufficientBudget,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "domain fault keeps its message",
			err:  New(KindDuplicate, "un budget existe déjà pour 2026 / Fonctionnement"),
			want: "un budget existe déjà pour 2026 / Fonctionnement",
		},
		{
			name: "storage fault is generic",
			err:  Wrap(KindStorage, errors.New("disk I/O error"), "lecture budgets"),
			want: "Erreur d'accès à la base de données",
		},
		{
			name: "unclassified error is generic",
			err:  errors.New("panic elsewhere"),
			want: "Une erreur inattendue s'est produite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("no such column")
	err := Wrap(KindStorage, cause, "failed to list budgets")

	if !errors.Is(err, cause) {
		t.Error("Wrap() should preserve the cause for errors.Is")
	}
	if !Is(err, KindStorage) {
		t.Error("Is() should match the wrapped kind")
	}
}
