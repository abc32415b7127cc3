package domain

// Domain is a category name links are grouped under
type Domain struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
