package demo

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/response"
)

// SumResponse é o corpo de GET /sum.
type SumResponse struct {
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	Sum float64 `json:"sum"`
}

// Product é o corpo de GET /product.
type Product struct {
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
}

// catalog é o catálogo fixo da rota de exemplo.
var catalog = map[string]Product{
	"1": {Name: "Mouse", Price: 100},
	"2": {Name: "Teclado", Price: 200},
}

// Handler expõe as rotas públicas de exemplo (parâmetro de rota e de query).
type Handler struct {
	Logger logger.Logger
}

// NewHandler cria o Handler de exemplo.
func NewHandler(log logger.Logger) *Handler {
	return &Handler{Logger: log}
}

// GreetHandler lida com GET /greet/{name}.
// @Summary Saudação
// @Tags demo
// @Produce plain
// @Param name path string true "Nome"
// @Success 200 {string} string "Olá, nome!"
// @Router /greet/{name} [get]
func (h *Handler) GreetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Olá, " + name + "!"))
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SumHandler lida com GET /sum?a=&b=.
// @Summary Soma dois números
// @Tags demo
// @Produce json
// @Param a query number true "Primeira parcela"
// @Param b query number true "Segunda parcela"
// @Success 200 {object} demo.SumResponse
// @Failure 400 {object} domain.ErrorResponse "Parâmetros não numéricos"
// @Router /sum [get]
func (h *Handler) SumHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, okA := parseNumber(q.Get("a"))
	b, okB := parseNumber(q.Get("b"))
	if !okA || !okB {
		response.Error(w, r, h.Logger, apperror.NewInvalidInputError("Por favor, forneça dois números válidos nos parâmetros a e b."))
		return
	}

	response.JSON(w, http.StatusOK, SumResponse{A: a, B: b, Sum: a + b})
}

// ProductHandler lida com GET /product?id=.
// @Summary Produto de exemplo
// @Tags demo
// @Produce json
// @Param id query string true "ID do produto (1 ou 2)"
// @Success 200 {object} demo.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /product [get]
func (h *Handler) ProductHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := catalog[r.URL.Query().Get("id")]
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewNotFoundError("Produto não encontrado"))
		return
	}
	response.JSON(w, http.StatusOK, p)
}
