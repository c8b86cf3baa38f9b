// Package validate contains the pure field validators used as the
// pre-condition gate by every service create/update operation.
// This is part of the Functional Core - no I/O, only pure functions.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Verdict represents the outcome of a validation check.
type Verdict struct {
	OK     bool
	Reason string // Human-readable reason (populated when not OK)
}

// Error returns the verdict as an error if the check failed, nil otherwise.
func (v Verdict) Error() error {
	if v.OK {
		return nil
	}
	return fmt.Errorf("%s", v.Reason)
}

func ok() Verdict {
	return Verdict{OK: true}
}

func fail(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	telephoneRe  = regexp.MustCompile(`^[\d\s+\-().]+$`)
	codePostalRe = regexp.MustCompile(`^\d{5}$`)
	numeroBCRe   = regexp.MustCompile(`^BC-\d{4}-\d{4}$`)
	digitRe      = regexp.MustCompile(`\D`)
)

// Required checks that a required field is not empty or blank.
func Required(value, fieldName string) Verdict {
	if strings.TrimSpace(value) == "" {
		return fail("Le champ '%s' est obligatoire", fieldName)
	}
	return ok()
}

// Email checks email shape. Empty is accepted: the field is optional.
func Email(email string) Verdict {
	if email == "" {
		return ok()
	}
	if !emailRe.MatchString(email) {
		return fail("Format d'email invalide")
	}
	return ok()
}

// Telephone checks phone shape. Accepts +33, separators, and requires at
// least 10 digits. Empty is accepted: the field is optional.
func Telephone(telephone string) Verdict {
	if telephone == "" {
		return ok()
	}
	if !telephoneRe.MatchString(telephone) {
		return fail("Format de téléphone invalide")
	}
	if len(digitRe.ReplaceAllString(telephone, "")) < 10 {
		return fail("Format de téléphone invalide")
	}
	return ok()
}

// CodePostal checks a French postal code (5 digits). Empty is accepted.
func CodePostal(codePostal string) Verdict {
	if codePostal == "" {
		return ok()
	}
	if !codePostalRe.MatchString(codePostal) {
		return fail("Code postal invalide")
	}
	return ok()
}

// Montant checks a monetary amount: non-negative, at most 2 decimal digits.
func Montant(montant float64) Verdict {
	if math.IsNaN(montant) || math.IsInf(montant, 0) {
		return fail("Montant invalide")
	}
	if montant < 0 {
		return fail("Le montant ne peut pas être négatif")
	}
	cents := montant * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return fail("Le montant ne peut pas avoir plus de deux décimales")
	}
	return ok()
}

// MontantPositif checks a strictly positive monetary amount.
func MontantPositif(montant float64) Verdict {
	if v := Montant(montant); !v.OK {
		return v
	}
	if montant <= 0 {
		return fail("Le montant doit être supérieur à zéro")
	}
	return ok()
}

// Annee checks a budget year against a plausible window.
func Annee(annee int, now time.Time) Verdict {
	if annee < 2000 || annee > now.Year()+10 {
		return fail("Année invalide")
	}
	return ok()
}

// DateRange checks that the end date is not before the start date.
// Either side may be zero (the field is optional).
func DateRange(debut, fin time.Time) Verdict {
	if debut.IsZero() || fin.IsZero() {
		return ok()
	}
	if fin.Before(debut) {
		return fail("La date de fin doit être postérieure à la date de début")
	}
	return ok()
}

// NumeroBC checks a bon de commande number shape (BC-YYYY-NNNN).
func NumeroBC(numero string) Verdict {
	if !numeroBCRe.MatchString(numero) {
		return fail("Numéro de BC invalide (format attendu: BC-AAAA-NNNN)")
	}
	return ok()
}

// OneOf checks that a value belongs to an enumerated domain.
func OneOf(value, fieldName string, allowed []string) Verdict {
	for _, a := range allowed {
		if value == a {
			return ok()
		}
	}
	return fail("%s invalide. Valeurs acceptées: %s", fieldName, strings.Join(allowed, ", "))
}
