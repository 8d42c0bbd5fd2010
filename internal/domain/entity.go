package domain

// Entity é o contrato mínimo de toda linha persistida: possui um identificador inteiro
// atribuído pelo banco.
type Entity interface {
	EntityID() int64
}

// Page é o envelope de paginação devolvido por toda listagem.
type Page[T any] struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Data   []T `json:"data"`
}

// NewPage monta o envelope garantindo que Data nunca seja serializado como null.
func NewPage[T any](offset, limit int, data []T) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Limit: limit, Offset: offset, Data: data}
}

// AccessToken é o corpo de resposta de signup e login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}
