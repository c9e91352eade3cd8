package models

// UserProfile holds the onboarded user's identity and focus selections.
// Narrative is the free-text routine description fed to AI decomposition;
// IdentityStatement may be user-written or AI-generated.
type UserProfile struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	IsPremium         bool       `json:"isPremium"`
	IdentityStatement string     `json:"identityStatement"`
	FocusAreas        []Category `json:"focusAreas"`
	Narrative         string     `json:"narrative,omitempty"`
}

// PrimaryFocus returns the first focus area, falling back to Mindset when
// the profile has none selected
func (p UserProfile) PrimaryFocus() Category {
	if len(p.FocusAreas) > 0 {
		return p.FocusAreas[0]
	}
	return CategoryMindset
}
