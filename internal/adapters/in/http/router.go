package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"optiroute/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const maxUploadSize = "10M"

var registerDocOnce sync.Once

type openAPIDoc struct {
	doc string
}

func (d openAPIDoc) ReadDoc() string {
	return d.doc
}

// NewEcho wires the API routes, the health check and the swagger UI.
func NewEcho(server servers.ServerInterface) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	if err := registerDoc(swagger); err != nil {
		return nil, err
	}

	validator, err := NewRequestValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxUploadSize))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

func registerDoc(swagger *openapi3.T) error {
	raw, err := json.Marshal(swagger)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{doc: string(raw)})
	})
	return nil
}
