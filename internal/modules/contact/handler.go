package contact

import (
	"errors"

	"github.com/agenda-br/core/internal/middleware"
	"github.com/agenda-br/core/internal/pkg/pagination"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/contacts", authMW)

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.show)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// GET /contacts?search=&orderBy=&orderDirection=&qtd=&page=
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	page, err := h.svc.List(
		middleware.CurrentUserID(c),
		c.Query("search"),
		c.DefaultQuery("orderBy", "name"),
		c.DefaultQuery("orderDirection", "asc"),
		q,
	)
	if err != nil {
		h.fail(c, "listar contatos", err)
		return
	}
	response.OK(c, "Contatos listados com sucesso.", page)
}

// POST /contacts
func (h *Handler) create(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		if fields := validation.BindErrorFields(err); fields != nil {
			response.ValidationFailed(c, fields)
			return
		}
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}

	created, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.ValidationFailed(c, verr.Fields)
			return
		}
		h.fail(c, "criar contato", err)
		return
	}
	response.Created(c, "Contato criado com sucesso.", created)
}

// GET /contacts/:id
func (h *Handler) show(c *gin.Context) {
	found, err := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Contato não encontrado.")
			return
		}
		h.fail(c, "buscar contato", err)
		return
	}
	response.OK(c, "Contato encontrado com sucesso.", found)
}

// PUT /contacts/:id
func (h *Handler) update(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		if fields := validation.BindErrorFields(err); fields != nil {
			response.ValidationFailed(c, fields)
			return
		}
		response.BadRequest(c, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Contato não encontrado.")
			return
		}
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.ValidationFailed(c, verr.Fields)
			return
		}
		h.fail(c, "atualizar contato", err)
		return
	}
	response.OK(c, "Contato atualizado com sucesso.", updated)
}

// DELETE /contacts/:id
func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Contato não encontrado.")
			return
		}
		h.fail(c, "excluir contato", err)
		return
	}
	response.OK(c, "Contato excluído com sucesso.", nil)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.log.Error("contact "+op, zap.Error(err))
	response.InternalError(c, "Erro interno do servidor.")
}
