package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
)

// MaxBodyBytes limita o corpo das requisições JSON.
const MaxBodyBytes = 1 << 20

// JSON escreve data serializado com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error traduz err para status + corpo {"error","code","category"}. Erros 5xx
// são registrados e o cliente recebe apenas a mensagem genérica.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor em %s %s: %s", r.Method, r.URL.Path, category), err)
	} else {
		log.Debug("Requisição rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	JSON(w, status, domain.ErrorResponse{
		Error:    message,
		Code:     status,
		Category: category,
	})
}

// Handle é o ponto único de saída dos handlers: sucesso com successStatus ou erro mapeado.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	if successStatus == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	JSON(w, successStatus, data)
}

// Decode lê o corpo JSON em dst. Corpo ausente, malformado ou com tipos
// errados vira InvalidInputError.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.NewInvalidInputError("Corpo da requisição vazio.")
		case errors.As(err, &typeErr):
			return apperror.NewInvalidInputError(fmt.Sprintf("Campo '%s' com tipo inválido.", typeErr.Field))
		case errors.As(err, &maxErr):
			return apperror.NewInvalidInputError("Corpo da requisição muito grande.")
		default:
			return apperror.NewInvalidInputError("Payload inválido. Verifique o formato JSON.")
		}
	}
	if dec.More() {
		return apperror.NewInvalidInputError("Payload inválido. Envie um único objeto JSON.")
	}
	return nil
}

// PathID lê o parâmetro {id} da rota. Valores não numéricos ou não positivos
// viram InvalidInputError.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewInvalidInputError("O ID deve ser um inteiro positivo.")
	}
	return id, nil
}
