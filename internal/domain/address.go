package domain

// Address representa um endereço. O vínculo com o imóvel é mantido pelo imóvel.
type Address struct {
	ID         int64  `json:"id"`
	Number     int    `json:"numero"`
	PostalCode string `json:"cep"` // sem máscara
}

func (a Address) EntityID() int64 { return a.ID }

// AddressInput é o payload de criação/atualização de endereços.
type AddressInput struct {
	Number     int    `json:"numero"`
	PostalCode string `json:"cep"`
}
