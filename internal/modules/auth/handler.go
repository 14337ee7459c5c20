package auth

import (
	"errors"
	"net/http"

	"github.com/agenda-br/core/internal/middleware"
	"github.com/agenda-br/core/internal/pkg/response"
	"github.com/agenda-br/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes wires the account endpoints. loginMW (rate limiting)
// guards the credential-taking routes; authMW guards the bearer ones.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, loginMW gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", loginMW, h.login)
	rg.POST("/password/reset", loginMW, h.sendPasswordReset)
	rg.POST("/delete-account", loginMW, h.deleteAccount)

	rg.POST("/logout", authMW, h.logout)
	rg.GET("/me", authMW, h.me)
}

// POST /register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.ValidationFailed(c, verr.Fields)
			return
		}
		h.fail(c, "register", err, "Erro ao registrar usuário.")
		return
	}
	response.Created(c, "Usuário registrado com sucesso.", u)
}

// POST /login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}
	if errs := validation.Check(&dto); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	token, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errWrongCredentials) {
			response.Unauthorized(c, "Credenciais incorretas.")
			return
		}
		h.fail(c, "login", err, "Erro ao realizar login.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Login realizado com sucesso.",
		"access_token": token,
	})
}

// POST /logout
func (h *Handler) logout(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		h.fail(c, "logout", err, "Erro ao realizar logout.")
		return
	}
	response.OK(c, "Logout realizado com sucesso.", nil)
}

// GET /me
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errAccountGone) {
			response.Unauthorized(c, "Token inválido ou expirado.")
			return
		}
		h.fail(c, "me", err, "Erro ao obter o usuário autenticado.")
		return
	}
	response.OK(c, "Usuário autenticado.", u)
}

// POST /password/reset
func (h *Handler) sendPasswordReset(c *gin.Context) {
	var dto ResetPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}
	if errs := validation.Check(&dto); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	// Uniform failure: an unknown email and a delivery error answer the
	// same way, so the endpoint does not confirm which emails exist.
	if err := h.svc.SendPasswordReset(dto.Email); err != nil {
		response.InternalError(c, "Erro ao enviar o link de recuperação de senha.")
		return
	}
	response.OK(c, "Link de recuperação de senha enviado com sucesso.", nil)
}

// POST /delete-account
func (h *Handler) deleteAccount(c *gin.Context) {
	var dto DeleteAccountDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}
	if errs := validation.Check(&dto); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	if err := h.svc.DeleteAccount(dto.Email, dto.Password); err != nil {
		if errors.Is(err, errWrongCredentials) {
			response.Unauthorized(c, "Credenciais incorretas. A conta não foi deletada.")
			return
		}
		h.fail(c, "delete account", err, "Erro ao deletar a conta.")
		return
	}
	response.OK(c, "Conta deletada com sucesso.", nil)
}

func (h *Handler) fail(c *gin.Context, op string, err error, msg string) {
	h.log.Error("auth "+op, zap.Error(err))
	response.InternalError(c, msg)
}
