package domain

// StageRadiologie represents a radiology internship placement record
type StageRadiologie struct {
	ID                             *int64   `json:"id"`                             // Store-assigned identifier, nil before first save
	AnneeEtude                     *string  `json:"anneeEtude"`                     // Study year (e.g., "DES3")
	DateDebut                      *string  `json:"dateDebut"`                      // Start date, YYYY-MM-DD
	DateFin                        *string  `json:"dateFin"`                        // End date, YYYY-MM-DD
	Hopital                        *string  `json:"hopital"`                        // Hospital
	ChefService                    *string  `json:"chefService"`                    // Head of department
	Semestre                       *string  `json:"semestre"`                       // Term
	Groupe                         *string  `json:"groupe"`                         // Group
	EvaluationObjectif1Etudiant    *string  `json:"evaluationObjectif1Etudiant"`    // Student self-evaluation for objective 1
	NoteObjectif1EncadrantReferent *int     `json:"noteObjectif1EncadrantReferent"` // Supervisor grade for objective 1
	User                           *UserRef `json:"user"`                           // Owning user
}

// UserRef identifies the user a record belongs to
type UserRef struct {
	Login string `json:"login"`
}

// OwnerLogin returns the owning user's login, or "" when the record has no owner.
func (s StageRadiologie) OwnerLogin() string {
	if s.User == nil {
		return ""
	}
	return s.User.Login
}

// StageRadiologiePatch carries a merge-patch for a StageRadiologie.
// Only the fields listed here can be changed by a partial update; the owning
// user in particular is not patchable.
type StageRadiologiePatch struct {
	ID                             *int64           `json:"id"`
	AnneeEtude                     Optional[string] `json:"anneeEtude"`
	DateDebut                      Optional[string] `json:"dateDebut"`
	DateFin                        Optional[string] `json:"dateFin"`
	Hopital                        Optional[string] `json:"hopital"`
	ChefService                    Optional[string] `json:"chefService"`
	Semestre                       Optional[string] `json:"semestre"`
	Groupe                         Optional[string] `json:"groupe"`
	EvaluationObjectif1Etudiant    Optional[string] `json:"evaluationObjectif1Etudiant"`
	NoteObjectif1EncadrantReferent Optional[int]    `json:"noteObjectif1EncadrantReferent"`
}

// ApplyTo merges every present field of the patch into s.
func (p StageRadiologiePatch) ApplyTo(s *StageRadiologie) {
	p.AnneeEtude.ApplyTo(&s.AnneeEtude)
	p.DateDebut.ApplyTo(&s.DateDebut)
	p.DateFin.ApplyTo(&s.DateFin)
	p.Hopital.ApplyTo(&s.Hopital)
	p.ChefService.ApplyTo(&s.ChefService)
	p.Semestre.ApplyTo(&s.Semestre)
	p.Groupe.ApplyTo(&s.Groupe)
	p.EvaluationObjectif1Etudiant.ApplyTo(&s.EvaluationObjectif1Etudiant)
	p.NoteObjectif1EncadrantReferent.ApplyTo(&s.NoteObjectif1EncadrantReferent)
}
