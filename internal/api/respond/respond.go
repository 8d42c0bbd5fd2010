// Package respond padroniza as respostas JSON dos handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gocorretora/internal/domain"
	apperror "gocorretora/internal/errors"
	"gocorretora/internal/pkg/logger"
)

// JSON escreve data com o status informado. data nil resulta em corpo vazio.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para status, categoria e detalhe e escreve o corpo de erro.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, detail := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
			map[string]interface{}{"path": r.URL.Path, "detail": detail})
	}

	JSON(w, log, status, domain.ErrorResponse{Code: status, Category: category, Detail: detail})
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError(fmt.Sprintf("Payload inválido. Verifique o formato JSON: %v", err))
	}
	return nil
}
