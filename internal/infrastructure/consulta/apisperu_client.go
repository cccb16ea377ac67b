// Package consulta implementa el cliente del padrón externo de documentos
// (RENIEC para DNI, SUNAT para RUC) vía el API público dniruc.apisperu.com.
package consulta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/clientes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/pkg/config"
)

var _ clientes.ConsultaDocumento = (*APIsPeruClient)(nil)

// APIsPeruClient implementa clientes.ConsultaDocumento contra apisperu.
// Sin token configurado, toda consulta responde ErrConsultaNoDisponible.
type APIsPeruClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewAPIsPeruClient construye el cliente con un timeout corto: la consulta es
// un autocompletado de formulario, no vale la pena esperar más.
func NewAPIsPeruClient(cfg config.ConsultaConfig) *APIsPeruClient {
	return &APIsPeruClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
	}
}

type dniResponse struct {
	DNI             string `json:"dni"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
}

type rucResponse struct {
	RUC          string `json:"ruc"`
	RazonSocial  string `json:"razonSocial"`
	Direccion    string `json:"direccion"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
}

// Consultar busca el documento: 8 dígitos contra RENIEC, 11 contra SUNAT.
func (c *APIsPeruClient) Consultar(ctx context.Context, numero string) (*dto.ConsultaDocumentoResponse, error) {
	if c.token == "" {
		return nil, domain.ErrConsultaNoDisponible
	}
	if len(numero) == 8 {
		return c.consultarDNI(ctx, numero)
	}
	return c.consultarRUC(ctx, numero)
}

func (c *APIsPeruClient) consultarDNI(ctx context.Context, dni string) (*dto.ConsultaDocumentoResponse, error) {
	var out dniResponse
	if err := c.get(ctx, fmt.Sprintf("%s/dni/%s?token=%s", c.baseURL, dni, c.token), &out); err != nil {
		return nil, err
	}
	nombre := strings.TrimSpace(fmt.Sprintf("%s %s %s", out.Nombres, out.ApellidoPaterno, out.ApellidoMaterno))
	if nombre == "" {
		return nil, fmt.Errorf("%w: DNI %s", domain.ErrNoEncontrado, dni)
	}
	return &dto.ConsultaDocumentoResponse{
		TipoPersona: entity.PersonaNatural,
		RucDni:      dni,
		RazonSocial: nombre,
	}, nil
}

func (c *APIsPeruClient) consultarRUC(ctx context.Context, ruc string) (*dto.ConsultaDocumentoResponse, error) {
	var out rucResponse
	if err := c.get(ctx, fmt.Sprintf("%s/ruc/%s?token=%s", c.baseURL, ruc, c.token), &out); err != nil {
		return nil, err
	}
	if out.RazonSocial == "" {
		return nil, fmt.Errorf("%w: RUC %s", domain.ErrNoEncontrado, ruc)
	}
	direccion := out.Direccion
	if out.Distrito != "" {
		direccion = strings.TrimSpace(direccion + " " + out.Distrito)
	}
	return &dto.ConsultaDocumentoResponse{
		TipoPersona: entity.PersonaJuridica,
		RucDni:      ruc,
		RazonSocial: out.RazonSocial,
		Direccion:   direccion,
	}, nil
}

func (c *APIsPeruClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("consulta: armar request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConsultaNoDisponible, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNoEncontrado
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: HTTP %d", domain.ErrConsultaNoDisponible, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrConsultaNoDisponible, err)
	}
	return nil
}
