// Package response centraliza a escrita das respostas JSON dos handlers e middlewares.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
)

// JSON escreve data com o status informado.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil && log != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro (AppError ou não) no envelope padronizado {code, category, message}.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		} else {
			log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
		}
	}

	JSON(w, log, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// Decode lê o corpo JSON da requisição em dst. Corpos vazios são aceitos quando
// allowEmpty é verdadeiro (ações com payload opcional).
func Decode(r *http.Request, dst interface{}, allowEmpty bool) error {
	if r.Body == nil || r.ContentLength == 0 {
		if allowEmpty {
			return nil
		}
		return apperror.NewValidationError("Payload obrigatório.")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Corpo chunked vazio (ContentLength -1) só é detectado na leitura.
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return nil
			}
			return apperror.NewValidationError("Payload obrigatório.")
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}
