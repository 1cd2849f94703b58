// Package content serves the static marketing copy of the landing page:
// headline statistics, feature cards, testimonials and contact details.
package content

// Stat is a headline figure shown in the statistics band.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Feature is one card in the features grid.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a practitioner quote. Avatar is empty when the widget
// should render initials instead of a photo.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Avatar  string `json:"avatar,omitempty"`
	Content string `json:"content"`
}

// ContactInfo is one entry of the contact block. Link is empty for
// entries that are not clickable.
type ContactInfo struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

// Landing bundles everything the landing page renders statically.
type Landing struct {
	Stats        []Stat        `json:"stats"`
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
	Contact      []ContactInfo `json:"contact"`
}

// Default returns the landing copy. Callers receive a fresh value each
// time so handlers can never mutate shared state.
func Default() Landing {
	return Landing{
		Stats: []Stat{
			{Value: "50%", Label: "Temps administratif économisé"},
			{Value: "98%", Label: "Satisfaction client"},
			{Value: "24/7", Label: "Support disponible"},
			{Value: "+2,500", Label: "Cabinets utilisateurs"},
		},
		Features: []Feature{
			{
				Icon:        "calendar",
				Title:       "Agenda intelligent",
				Description: "Planifiez vos rendez-vous avec un agenda synchronisé. Rappels automatiques par SMS et email.",
			},
			{
				Icon:        "users",
				Title:       "Gestion des patients",
				Description: "Dossiers médicaux complets et sécurisés. Historique des consultations et ordonnances.",
			},
			{
				Icon:        "file-text",
				Title:       "Facturation simplifiée",
				Description: "Génération automatique des factures et télétransmission. Suivi des paiements en temps réel.",
			},
			{
				Icon:        "brain",
				Title:       "Assistant IA",
				Description: "Notre chatbot répond à vos questions et aide vos patients à prendre rendez-vous 24h/24.",
			},
			{
				Icon:        "credit-card",
				Title:       "Paiement en ligne",
				Description: "Acceptez les paiements par carte bancaire. Téléconsultations intégrées et sécurisées.",
			},
			{
				Icon:        "bell",
				Title:       "Notifications",
				Description: "Alertes personnalisées pour les rendez-vous, rappels de vaccins et suivis de traitements.",
			},
		},
		Testimonials: []Testimonial{
			{
				Name:    "Dr. Sophie Martin",
				Role:    "Médecin généraliste",
				Content: "MediCare Pro a transformé la gestion de mon cabinet. Je gagne plus de 2 heures par jour sur l'administratif.",
			},
			{
				Name:    "Dr. Jean Dupont",
				Role:    "Dermatologue",
				Content: "L'assistant IA est incroyable. Mes patients peuvent prendre rendez-vous à toute heure, c'est un vrai plus.",
			},
			{
				Name:    "Dr. Marie Leroy",
				Role:    "Pédiatre",
				Content: "Interface intuitive et support réactif. Je recommande à tous mes confrères.",
			},
		},
		Contact: []ContactInfo{
			{
				Icon:  "phone",
				Title: "Téléphone",
				Value: "01 23 45 67 89",
				Link:  "tel:+33123456789",
			},
			{
				Icon:  "mail",
				Title: "Email",
				Value: "contact@medicare-pro.fr",
				Link:  "mailto:contact@medicare-pro.fr",
			},
			{
				Icon:  "location",
				Title: "Adresse",
				Value: "123 Avenue de la Santé, 75001 Paris, France",
				Link:  "https://maps.google.com/?q=123+Avenue+de+la+Santé+75001+Paris+France",
			},
			{
				Icon:  "clock",
				Title: "Horaires",
				Value: "Lun - Ven : 9h00 - 18h00",
			},
		},
	}
}
