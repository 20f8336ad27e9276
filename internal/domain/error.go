package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"409"`
	Category string `json:"category" example:"INVALID_STATE_TRANSITION"`
	Message  string `json:"message" example:"Item já aprovado não pode ser recontado."`
}
