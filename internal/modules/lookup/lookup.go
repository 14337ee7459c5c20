// Package lookup proxies address lookups to third-party services: ViaCEP
// for postal codes and the Google Maps geocoding API. Pure pass-through,
// no invariants of its own.
package lookup

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/agenda-br/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

type Handler struct {
	client        *http.Client
	viaCEPBase    string
	geocodeBase   string
	googleMapsKey string
	log           *zap.Logger
}

func NewHandler(googleMapsKey string, log *zap.Logger) *Handler {
	return &Handler{
		client:        &http.Client{Timeout: 10 * time.Second},
		viaCEPBase:    "https://viacep.com.br/ws",
		geocodeBase:   "https://maps.googleapis.com/maps/api/geocode/json",
		googleMapsKey: googleMapsKey,
		log:           log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/cep", authMW, h.cep)
	rg.POST("/geocode", authMW, h.geocode)
}

// POST /cep {"cep": "01001-000"}
func (h *Handler) cep(c *gin.Context) {
	var body struct {
		CEP string `json:"cep"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !cepPattern.MatchString(body.CEP) {
		response.BadRequest(c, "CEP inválido.")
		return
	}

	h.proxy(c, h.viaCEPBase+"/"+body.CEP+"/json/")
}

// POST /geocode {"address": "..."}
func (h *Handler) geocode(c *gin.Context) {
	var body struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Address == "" {
		response.BadRequest(c, "Endereço inválido.")
		return
	}

	q := url.Values{}
	q.Set("address", body.Address)
	q.Set("key", h.googleMapsKey)
	h.proxy(c, h.geocodeBase+"?"+q.Encode())
}

// proxy fetches target and relays its JSON body untouched.
func (h *Handler) proxy(c *gin.Context, target string) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp, err := h.client.Do(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer resp.Body.Close()

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("lookup proxy", zap.Error(err))
	response.InternalError(c, "Erro ao consultar o serviço externo.")
}
