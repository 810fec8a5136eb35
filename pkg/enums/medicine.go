package enums

import "fmt"

// MedicineForm represents the canonical medicine_form enum in Postgres.
type MedicineForm string

const (
	MedicineFormTablet    MedicineForm = "tablet"
	MedicineFormCapsule   MedicineForm = "capsule"
	MedicineFormSyrup     MedicineForm = "syrup"
	MedicineFormInjection MedicineForm = "injection"
	MedicineFormOther     MedicineForm = "other"
)

var validMedicineForms = []MedicineForm{
	MedicineFormTablet,
	MedicineFormCapsule,
	MedicineFormSyrup,
	MedicineFormInjection,
	MedicineFormOther,
}

// String implements fmt.Stringer.
func (m MedicineForm) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MedicineForm.
func (m MedicineForm) IsValid() bool {
	for _, candidate := range validMedicineForms {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMedicineForm converts raw input into a MedicineForm.
func ParseMedicineForm(value string) (MedicineForm, error) {
	for _, candidate := range validMedicineForms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid medicine form %q", value)
}
