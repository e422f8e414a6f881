package user

import (
	"context"
	"net/http"
	"time"

	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/middleware"
	"gocontrole/internal/pkg/response"
)

// UserService define o contrato para registro, login e logout.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (domain.User, error)
}

// CookieConfig controla o cookie de sessão emitido no login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// ProfileResponse é devolvido por GET /profile.
type ProfileResponse struct {
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Cookie  CookieConfig
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, cookie CookieConfig, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Cookie:  cookie,
		Logger:  log,
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RegisterUserHandler lida com a requisição POST /register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 403 {object} domain.ErrorResponse "Papel não permitido no registro público"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 429 {object} domain.ErrorResponse "Muitas requisições"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(w, r, &reg); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)

	// O hash da senha nunca sai: domain.User usa a tag `json:"-"`.
	response.Handle(w, r, h.Logger, newUser, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /login.
// @Summary Autentica um usuário e abre uma sessão
// @Description Recebe email/senha e devolve o token de sessão no corpo e no cookie HttpOnly.
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.Credentials true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.LoginResponse "Sessão criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Muitas requisições"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := response.Decode(w, r, &creds); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), creds)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	h.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	response.JSON(w, http.StatusOK, resp)
}

// LogoutUserHandler lida com a requisição POST /logout.
// @Summary Encerra a sessão atual
// @Tags users
// @Produce json
// @Security SessionAuth
// @Success 200 {object} map[string]string "Sessão encerrada"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /logout [post]
func (h *Handler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	tok := middleware.TokenFromContext(r.Context())

	if err := h.Service.Logout(r.Context(), tok); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	h.clearSessionCookie(w)
	response.JSON(w, http.StatusOK, map[string]string{"message": "Sessão encerrada."})
}

// ProfileHandler lida com a requisição GET /profile.
// @Summary Dados do usuário autenticado
// @Tags users
// @Produce json
// @Security SessionAuth
// @Success 200 {object} user.ProfileResponse
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /profile [get]
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
		return
	}

	u, err := h.Service.Profile(r.Context(), sess.UserID)
	if apperror.IsNotFound(err) {
		// Usuário removido depois do login: a sessão não representa mais ninguém.
		err = apperror.NewUnauthorizedError("Sessão inválida ou expirada.")
	}
	response.Handle(w, r, h.Logger, ProfileResponse{User: u, ExpiresAt: sess.ExpiresAt}, err, http.StatusOK)
}
