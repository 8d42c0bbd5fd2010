package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Transaction representa a venda de um imóvel intermediada por um corretor.
type Transaction struct {
	ID         int64   `json:"id"`
	BrokerID   int64   `json:"id_corretor"`
	PropertyID int64   `json:"id_imovel"`
	Date       Date    `json:"data"`
	Total      float64 `json:"valor_total"`

	Broker   *Person   `json:"corretor,omitempty"`
	Property *Property `json:"imovel,omitempty"`
}

func (t Transaction) EntityID() int64 { return t.ID }

// TransactionInput é o payload de criação/atualização de transações.
type TransactionInput struct {
	BrokerID   int64   `json:"id_corretor"`
	PropertyID int64   `json:"id_imovel"`
	Date       Date    `json:"data"`
	Total      float64 `json:"valor_total"`
}

// DateLayout é o formato de data aceito e devolvido pela API.
const DateLayout = "2006-01-02"

// Date é uma data de calendário (sem hora) serializada como "AAAA-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t para a data de calendário em UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("data deve ser uma string: %w", err)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("data deve seguir o formato %s: %w", DateLayout, err)
	}
	d.Time = t
	return nil
}
