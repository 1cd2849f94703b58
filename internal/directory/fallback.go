package directory

import "github.com/cabinetx/front-office/internal/gateway"

// FallbackClinics returns the built-in cabinet list used when the clinic
// service cannot be reached. Returned as a fresh slice so callers cannot
// mutate the defaults.
func FallbackClinics() []gateway.Clinic {
	return []gateway.Clinic{
		{
			ID:             1,
			Name:           "Cabinet Dr. Martin",
			Specialty:      "Médecine générale",
			Phone:          "0612345678",
			Address:        "Centre Ville",
			Status:         gateway.ClinicActive,
			ServiceEndDate: "2027-12-31",
		},
		{
			ID:             2,
			Name:           "Cabinet Dr. Dupont",
			Specialty:      "Dermatologie",
			Phone:          "0623456789",
			Address:        "Quartier Nord",
			Status:         gateway.ClinicActive,
			ServiceEndDate: "2027-12-31",
		},
		{
			ID:             3,
			Name:           "Cabinet Dr. Bernard",
			Specialty:      "Cardiologie",
			Phone:          "0634567890",
			Address:        "Zone Sud",
			Status:         gateway.ClinicActive,
			ServiceEndDate: "2027-12-31",
		},
	}
}
