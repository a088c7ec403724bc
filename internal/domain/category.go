package domain

import "time"

// CategoryType is the closed set of competition categories. Adding a type
// means updating the rule book and the scoring curves as well; Known() keeps
// the boundary honest for values coming off the wire.
type CategoryType string

const (
	CategoryBaby     CategoryType = "baby"
	CategoryKids     CategoryType = "kids"
	CategoryMirim    CategoryType = "mirim"
	CategoryFeminina CategoryType = "feminina"
	CategoryAberta   CategoryType = "aberta"
	CategorySoma11   CategoryType = "soma11"
)

// CategoryTypes lists every known type in declaration order.
func CategoryTypes() []CategoryType {
	return []CategoryType{
		CategoryBaby,
		CategoryKids,
		CategoryMirim,
		CategoryFeminina,
		CategoryAberta,
		CategorySoma11,
	}
}

func (t CategoryType) Known() bool {
	switch t {
	case CategoryBaby, CategoryKids, CategoryMirim, CategoryFeminina, CategoryAberta, CategorySoma11:
		return true
	}
	return false
}

type Category struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Description string       `json:"description,omitempty"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
