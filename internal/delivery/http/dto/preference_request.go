package dto

type PreferenceRequest struct {
	PreferredCategories    []string       `json:"preferred_categories"`
	PreferredSkills        []string       `json:"preferred_skills"`
	LocationPreference     map[string]any `json:"location_preference"`
	AvailabilityPreference map[string]any `json:"availability_preference"`
}
