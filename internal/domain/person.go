package domain

import "encoding/json"

// Kind é o discriminador gravado em usuario.tipo.
type Kind string

const (
	KindUser   Kind = "usuario"
	KindOwner  Kind = "proprietario"
	KindBroker Kind = "corretor"
)

// Valid informa se k é um dos discriminadores conhecidos.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindOwner, KindBroker:
		return true
	}
	return false
}

// Person é a união etiquetada de Usuário, Proprietário e Corretor.
// Broker é não-nulo se, e somente se, Kind == KindBroker.
type Person struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Nunca sai do processo
	CPF          string `json:"cpf"`
	PhotoPath    string `json:"path_foto"`
	Kind         Kind   `json:"tipo"`

	Broker *BrokerProfile `json:"-"`
}

// BrokerProfile carrega as colunas exclusivas de corretor.
type BrokerProfile struct {
	CommissionPct float64
}

func (p Person) EntityID() int64 { return p.ID }

// MarshalJSON achata o payload do subtipo no objeto do usuário.
func (p Person) MarshalJSON() ([]byte, error) {
	type person Person
	out := struct {
		person
		CommissionPct *float64 `json:"percentual_comissao,omitempty"`
	}{person: person(p)}
	if p.Broker != nil {
		pct := p.Broker.CommissionPct
		out.CommissionPct = &pct
	}
	return json.Marshal(out)
}

// PersonInput é o payload de criação/atualização de usuários, proprietários e corretores.
// Senha vazia em uma atualização mantém o hash atual.
type PersonInput struct {
	Name          string  `json:"nome"`
	Email         string  `json:"email"`
	Password      string  `json:"senha"`
	CPF           string  `json:"cpf"` // sem máscara
	PhotoPath     string  `json:"path_foto"`
	CommissionPct float64 `json:"percentual_comissao"`
}

// Credentials é o payload de login.
type Credentials struct {
	Email    string `json:"email" example:"x@x.com"`
	Password string `json:"senha" example:"pass"`
}
