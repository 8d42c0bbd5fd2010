package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"404"`
	Category string `json:"category" example:"NOT_FOUND"`
	Detail   string `json:"detail" example:"USUARIO_NAO_ENCONTRADO"`
}
