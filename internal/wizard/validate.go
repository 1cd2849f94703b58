package wizard

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation rules for the personal-information step. All rules run on
// every pass so the form can show every violated field at once.
var (
	// Moroccan CIN: 1-2 uppercase letters followed by 5-7 digits.
	cinPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{5,7}$`)
	// Latin letters including accents, spaces, apostrophes and hyphens.
	namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)
	// Moroccan mobile: +212 or leading 0, then a digit in 5-7, then 8 digits.
	phonePattern = regexp.MustCompile(`^(\+212|0)[5-7]\d{8}$`)
)

// Validate checks a personal draft against the step 1 rules and returns
// the per-field error map. Pure: no field escapes validation because an
// earlier one failed.
func Validate(draft PersonalDraft) (bool, FieldErrors) {
	return validateAt(draft, time.Now())
}

func validateAt(draft PersonalDraft, now time.Time) (bool, FieldErrors) {
	errs := FieldErrors{}

	if draft.CIN == "" {
		errs["cin"] = "Le CIN est obligatoire"
	} else if !cinPattern.MatchString(strings.ToUpper(strings.TrimSpace(draft.CIN))) {
		errs["cin"] = "Format de CIN invalide (ex: AB123456)"
	}

	validateName(errs, "nom", draft.Nom, "Le nom")
	validateName(errs, "prenom", draft.Prenom, "Le prénom")

	if draft.Tel == "" {
		errs["tel"] = "Le numéro de téléphone est obligatoire"
	} else if !phonePattern.MatchString(stripWhitespace(draft.Tel)) {
		errs["tel"] = "Format de téléphone invalide (ex: 0612345678 ou +212612345678)"
	}

	if draft.Sexe == "" {
		errs["sexe"] = "Le sexe est obligatoire"
	}

	if draft.DateNaissance == "" {
		errs["dateNaissance"] = "La date de naissance est obligatoire"
	} else if birth, err := time.Parse("2006-01-02", draft.DateNaissance); err != nil {
		errs["dateNaissance"] = "La date de naissance est invalide"
	} else if !birth.Before(now) {
		errs["dateNaissance"] = "La date de naissance doit être dans le passé"
	}

	if draft.TypeMutuelle == "" {
		errs["typeMutuelle"] = "Le type de mutuelle est obligatoire"
	}

	if draft.CabinetID == 0 {
		errs["cabinetId"] = "Le cabinet est obligatoire"
	}

	return len(errs) == 0, errs
}

func validateName(errs FieldErrors, field, value, label string) {
	switch {
	case value == "":
		errs[field] = label + " est obligatoire"
	case utf8.RuneCountInString(value) < 2 || utf8.RuneCountInString(value) > 50:
		errs[field] = label + " doit contenir entre 2 et 50 caractères"
	case !namePattern.MatchString(value):
		errs[field] = label + " contient des caractères invalides"
	}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
