package domain

// Phone representa um telefone de um usuário (de qualquer tipo).
type Phone struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"id_usuario"`
	Number string `json:"numero"` // com máscara
	Type   int    `json:"tipo"`

	User *Person `json:"usuario,omitempty"`
}

func (p Phone) EntityID() int64 { return p.ID }

// PhoneInput é o payload de criação/atualização de telefones.
type PhoneInput struct {
	UserID int64  `json:"id_usuario"`
	Number string `json:"numero"`
	Type   int    `json:"tipo"`
}
