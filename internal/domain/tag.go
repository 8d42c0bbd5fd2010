package domain

// Tag é uma etiqueta associada a zero ou mais imóveis.
type Tag struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Category bool   `json:"tipo"` // flag opaca
}

func (t Tag) EntityID() int64 { return t.ID }

// TagInput é o payload de criação/atualização de tags.
type TagInput struct {
	Name     string `json:"nome"`
	Category bool   `json:"tipo"`
}
