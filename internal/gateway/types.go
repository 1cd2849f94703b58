package gateway

// Wire types for the CabinetX API gateway. JSON field names follow the
// backend DTOs, including the snake-cased appointment hours the scheduling
// service expects.

// ClinicStatus is the lifecycle state of a cabinet.
type ClinicStatus string

const (
	ClinicActive    ClinicStatus = "ACTIVE"
	ClinicInactive  ClinicStatus = "INACTIVE"
	ClinicSuspended ClinicStatus = "SUSPENDED"
)

// Sexe is the backend patient sex enumeration.
type Sexe string

const (
	SexeMasculin Sexe = "MASCULIN"
	SexeFeminin  Sexe = "FEMININ"
	SexeAutre    Sexe = "AUTRE"
)

// TypeMutuelle is the backend health-coverage enumeration.
type TypeMutuelle string

const (
	MutuelleAucune TypeMutuelle = "AUCUNE"
	MutuelleCNSS   TypeMutuelle = "CNSS"
	MutuelleCNOPS  TypeMutuelle = "CNOPS"
	MutuellePrivee TypeMutuelle = "PRIVEE"
)

// MotifRDV is the backend appointment-reason enumeration.
type MotifRDV string

const (
	MotifConsultation MotifRDV = "CONSULTATION"
	MotifControl      MotifRDV = "CONTROL"
)

// Clinic is a cabinet as returned by the clinic service.
type Clinic struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Specialty      string       `json:"specialty"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	LogoURL        string       `json:"logoUrl,omitempty"`
	Status         ClinicStatus `json:"status"`
	ServiceEndDate string       `json:"serviceEndDate"`
}

// Adresse is the optional postal address on a patient record.
type Adresse struct {
	Rue        string `json:"rue,omitempty"`
	Ville      string `json:"ville,omitempty"`
	CodePostal string `json:"codePostal,omitempty"`
}

// Patient is the patient-service DTO. ID is assigned by the server on
// creation and zero on outbound create requests.
type Patient struct {
	ID            int64        `json:"id,omitempty"`
	CIN           string       `json:"cin"`
	Nom           string       `json:"nom"`
	Prenom        string       `json:"prenom"`
	DateNaissance string       `json:"dateNaissance"`
	Sexe          Sexe         `json:"sexe"`
	NumTel        string       `json:"numTel"`
	TypeMutuelle  TypeMutuelle `json:"typeMutuelle"`
	CabinetID     int64        `json:"cabinetId"`
	Adresse       *Adresse     `json:"adresse,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
}

// AppointmentRequest is the payload for creating a rendez-vous.
type AppointmentRequest struct {
	PatientID  int64    `json:"patientId"`
	CabinetID  int64    `json:"cabinetId"`
	Date       string   `json:"date"`
	HeureDebut string   `json:"Heure_debut"`
	HeureFin   string   `json:"Heure_fin"`
	MotifRDV   MotifRDV `json:"motifRDV"`
	Notes      string   `json:"notes,omitempty"`
}

// Appointment is the confirmation returned by the appointment service.
type Appointment struct {
	ID         int64  `json:"id"`
	PatientID  int64  `json:"patientId"`
	CabinetID  int64  `json:"cabinetId"`
	Date       string `json:"date"`
	HeureDebut string `json:"heureDebut"`
	HeureFin   string `json:"heureFin"`
	MotifRDV   string `json:"motifRDV"`
	Statut     string `json:"statut"`
	Notes      string `json:"notes,omitempty"`
}
