// Package servers holds the HTTP contract of the warehouse: the OpenAPI document,
// the request and response types it defines, and the echo binding layer that turns
// path and query parameters into typed arguments for ServerInterface.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created defines model for Created.
type Created struct {
	Id int64 `json:"id"`
}

// NewPallet defines model for NewPallet.
type NewPallet struct {
	Depth  int64 `json:"depth"`
	Height int64 `json:"height"`
	Width  int64 `json:"width"`
}

// NewBox defines model for NewBox.
type NewBox struct {
	Depth          int64               `json:"depth"`
	ExpireDate     *openapi_types.Date `json:"expireDate,omitempty"`
	Height         int64               `json:"height"`
	ProductionDate *openapi_types.Date `json:"productionDate,omitempty"`

	// Weight Grams
	Weight int64 `json:"weight"`
	Width  int64 `json:"width"`
}

// Box defines model for Box.
type Box struct {
	Depth          int64               `json:"depth"`
	ExpireDate     openapi_types.Date  `json:"expireDate"`
	Height         int64               `json:"height"`
	Id             int64               `json:"id"`
	PalletId       *int64              `json:"palletId,omitempty"`
	ProductionDate *openapi_types.Date `json:"productionDate,omitempty"`

	// Volume Cubic centimetres
	Volume int64 `json:"volume"`

	// Weight Grams
	Weight int64 `json:"weight"`
	Width  int64 `json:"width"`
}

// PalletSummary defines model for PalletSummary.
type PalletSummary struct {
	BoxCount int     `json:"boxCount"`
	Id       int64   `json:"id"`
	Volume   int64   `json:"volume"`
	VolumeM3 float64 `json:"volumeM3"`
	Weight   int64   `json:"weight"`
	WeightKg float64 `json:"weightKg"`
}

// ExpirationGroup defines model for ExpirationGroup.
type ExpirationGroup struct {
	ExpireDate openapi_types.Date `json:"expireDate"`
	Pallets    []PalletSummary    `json:"pallets"`
}

// ShelfLifePallet defines model for ShelfLifePallet.
type ShelfLifePallet struct {
	Id               int64              `json:"id"`
	LatestExpireDate openapi_types.Date `json:"latestExpireDate"`
	Volume           int64              `json:"volume"`
	VolumeM3         float64            `json:"volumeM3"`
}

// PalletId defines model for PalletId.
type PalletId = int64

// BoxId defines model for BoxId.
type BoxId = int64

// ListShelfLifeParams defines parameters for ListShelfLife.
type ListShelfLifeParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateBoxJSONRequestBody defines body for CreateBox for application/json ContentType.
type CreateBoxJSONRequestBody = NewBox

// CreatePalletJSONRequestBody defines body for CreatePallet for application/json ContentType.
type CreatePalletJSONRequestBody = NewPallet

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// All boxes
	// (GET /api/v1/boxes)
	ListBoxes(ctx echo.Context) error
	// Register a box
	// (POST /api/v1/boxes)
	CreateBox(ctx echo.Context) error
	// Register an empty pallet
	// (POST /api/v1/pallets)
	CreatePallet(ctx echo.Context) error
	// Take a box off a pallet
	// (DELETE /api/v1/pallets/{palletId}/boxes/{boxId})
	RemoveBoxFromPallet(ctx echo.Context, palletId PalletId, boxId BoxId) error
	// Put a box on a pallet
	// (PUT /api/v1/pallets/{palletId}/boxes/{boxId})
	AddBoxToPallet(ctx echo.Context, palletId PalletId, boxId BoxId) error
	// Pallets grouped by expire date
	// (GET /api/v1/reports/expiration-groups)
	ListExpirationGroups(ctx echo.Context) error
	// Pallets with the longest shelf life
	// (GET /api/v1/reports/shelf-life)
	ListShelfLife(ctx echo.Context, params ListShelfLifeParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListBoxes converts echo context to params.
func (w *ServerInterfaceWrapper) ListBoxes(ctx echo.Context) error {
	return w.Handler.ListBoxes(ctx)
}

// CreateBox converts echo context to params.
func (w *ServerInterfaceWrapper) CreateBox(ctx echo.Context) error {
	return w.Handler.CreateBox(ctx)
}

// CreatePallet converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePallet(ctx echo.Context) error {
	return w.Handler.CreatePallet(ctx)
}

// RemoveBoxFromPallet converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveBoxFromPallet(ctx echo.Context) error {
	palletId, boxId, err := bindPlacement(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveBoxFromPallet(ctx, palletId, boxId)
}

// AddBoxToPallet converts echo context to params.
func (w *ServerInterfaceWrapper) AddBoxToPallet(ctx echo.Context) error {
	palletId, boxId, err := bindPlacement(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AddBoxToPallet(ctx, palletId, boxId)
}

// ListExpirationGroups converts echo context to params.
func (w *ServerInterfaceWrapper) ListExpirationGroups(ctx echo.Context) error {
	return w.Handler.ListExpirationGroups(ctx)
}

// ListShelfLife converts echo context to params.
func (w *ServerInterfaceWrapper) ListShelfLife(ctx echo.Context) error {
	var params ListShelfLifeParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListShelfLife(ctx, params)
}

func bindPlacement(ctx echo.Context) (PalletId, BoxId, error) {
	var palletId PalletId
	err := runtime.BindStyledParameterWithOptions("simple", "palletId", ctx.Param("palletId"), &palletId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter palletId: %s", err))
	}

	var boxId BoxId
	err = runtime.BindStyledParameterWithOptions("simple", "boxId", ctx.Param("boxId"), &boxId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter boxId: %s", err))
	}

	return palletId, boxId, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/boxes", wrapper.ListBoxes)
	router.POST(baseURL+"/api/v1/boxes", wrapper.CreateBox)
	router.POST(baseURL+"/api/v1/pallets", wrapper.CreatePallet)
	router.DELETE(baseURL+"/api/v1/pallets/:palletId/boxes/:boxId", wrapper.RemoveBoxFromPallet)
	router.PUT(baseURL+"/api/v1/pallets/:palletId/boxes/:boxId", wrapper.AddBoxToPallet)
	router.GET(baseURL+"/api/v1/reports/expiration-groups", wrapper.ListExpirationGroups)
	router.GET(baseURL+"/api/v1/reports/shelf-life", wrapper.ListShelfLife)
}

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}
