package domain

// Property representa um imóvel. Owner, Address e Tags são preenchidos pelo serviço
// nas respostas; as colunas de chave estrangeira são a fonte da verdade.
type Property struct {
	ID           int64   `json:"id"`
	OwnerID      int64   `json:"id_proprietario"`
	AddressID    int64   `json:"id_endereco"`
	Name         string  `json:"nome"`
	Type         int     `json:"tipo"` // código opaco
	Price        float64 `json:"valor"`
	Description  string  `json:"descricao"`
	Size         int     `json:"tamanho"`
	Rooms        int     `json:"quartos"`
	ParkingSpots int     `json:"vagas"`
	Bathrooms    int     `json:"banheiros"`
	Available    bool    `json:"disponivel"`
	PhotoPath    string  `json:"path_foto"`

	Owner   *Person  `json:"proprietario,omitempty"`
	Address *Address `json:"endereco,omitempty"`
	Tags    []Tag    `json:"tags"`
}

func (p Property) EntityID() int64 { return p.ID }

// PropertyInput é o payload de criação/atualização de imóveis.
// TagIDs só é considerado na criação.
type PropertyInput struct {
	OwnerID      int64   `json:"id_proprietario"`
	AddressID    int64   `json:"id_endereco"`
	Name         string  `json:"nome"`
	Type         int     `json:"tipo"`
	Price        float64 `json:"valor"`
	Description  string  `json:"descricao"`
	Size         int     `json:"tamanho"`
	Rooms        int     `json:"quartos"`
	ParkingSpots int     `json:"vagas"`
	Bathrooms    int     `json:"banheiros"`
	Available    bool    `json:"disponivel"`
	PhotoPath    string  `json:"path_foto"`
	TagIDs       []int64 `json:"id_tags"`
}
