package model

// IngredientQuery lists the ingredients a local recipe must contain.
type IngredientQuery struct {
	RequiredIngredients []string `json:"required_ingredients"`
}

// ExtractedFilter holds the search constraints recovered from a free-text
// prompt. A nil field means "no constraint".
type ExtractedFilter struct {
	Ingredients         []string `json:"ingredients,omitempty"`
	Cuisine             *string  `json:"cuisine,omitempty"`
	Diet                *string  `json:"diet,omitempty"`
	MaxReadyTimeMinutes *int     `json:"maxReadyTime,omitempty" validate:"omitnil,gte=0"`
}

// IsEmpty reports whether the filter carries no constraint at all.
func (f ExtractedFilter) IsEmpty() bool {
	return len(f.Ingredients) == 0 && f.Cuisine == nil && f.Diet == nil && f.MaxReadyTimeMinutes == nil
}
