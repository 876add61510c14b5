package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBStringArray is a custom type for handling string arrays in JSON columns
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for string array", value)
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether s is an element of the array. Comparison is exact.
func (a JSONBStringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// Recipe is an entry of the local recipe collection.
// An ID of zero means the source did not assign one.
type Recipe struct {
	ID           int64            `gorm:"primaryKey" json:"id,omitempty" yaml:"id,omitempty"`
	Title        string           `gorm:"size:255;not null" json:"title" yaml:"title"`
	Region       string           `gorm:"size:100;index" json:"region" yaml:"region"`
	Description  string           `gorm:"type:text" json:"description,omitempty" yaml:"description,omitempty"`
	Image        string           `gorm:"size:255" json:"image,omitempty" yaml:"image,omitempty"`
	Ingredients  JSONBStringArray `gorm:"type:text;not null;default:'[]'" json:"ingredients" yaml:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:text;not null;default:'[]'" json:"instructions" yaml:"instructions"`
}

// TableName pins the table the SQL recipe source reads from.
func (Recipe) TableName() string {
	return "recipes"
}

// GeneratedRecipe is a recipe produced by the language model. It is returned
// to the caller as-is and never stored.
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	MealTime     string   `json:"mealTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}
