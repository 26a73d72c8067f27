package http

import (
	"errors"
	"math"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/generated/servers"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
//
// Mutations run one at a time: the domain model assumes a single writer, so every
// command handler is invoked under mu. Queries are not serialized, they read inside
// their own transaction.
type Server struct {
	mu sync.Mutex

	// Command handlers
	createPalletHandler        commands.CreatePalletCommandHandler
	createBoxHandler           commands.CreateBoxCommandHandler
	addBoxToPalletHandler      commands.AddBoxToPalletCommandHandler
	removeBoxFromPalletHandler commands.RemoveBoxFromPalletCommandHandler

	// Query handlers
	groupedHandler  queries.GetPalletsGroupedByExpirationQueryHandler
	topHandler      queries.GetTopPalletsByShelfLifeQueryHandler
	allBoxesHandler queries.GetAllBoxesQueryHandler

	defaultLimit int
	log          *logger.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// defaultLimit is used by the shelf life report when the request has no limit.
func NewServer(
	createPalletHandler commands.CreatePalletCommandHandler,
	createBoxHandler commands.CreateBoxCommandHandler,
	addBoxToPalletHandler commands.AddBoxToPalletCommandHandler,
	removeBoxFromPalletHandler commands.RemoveBoxFromPalletCommandHandler,
	groupedHandler queries.GetPalletsGroupedByExpirationQueryHandler,
	topHandler queries.GetTopPalletsByShelfLifeQueryHandler,
	allBoxesHandler queries.GetAllBoxesQueryHandler,
	defaultLimit int,
	log *logger.Logger,
) *Server {
	return &Server{
		createPalletHandler:        createPalletHandler,
		createBoxHandler:           createBoxHandler,
		addBoxToPalletHandler:      addBoxToPalletHandler,
		removeBoxFromPalletHandler: removeBoxFromPalletHandler,
		groupedHandler:             groupedHandler,
		topHandler:                 topHandler,
		allBoxesHandler:            allBoxesHandler,
		defaultLimit:               defaultLimit,
		log:                        log.With("component", "http_server"),
	}
}

// ListExpirationGroups handles GET /api/v1/reports/expiration-groups.
func (s *Server) ListExpirationGroups(ctx echo.Context) error {
	groups, err := s.groupedHandler.Handle(ctx.Request().Context(), queries.NewGetPalletsGroupedByExpirationQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to group pallets")
	}

	response := make([]servers.ExpirationGroup, len(groups))
	for i, group := range groups {
		pallets := make([]servers.PalletSummary, len(group.Pallets))
		for j, p := range group.Pallets {
			pallets[j] = servers.PalletSummary{
				Id:       int64(p.ID),
				Weight:   int64(p.Weight),
				Volume:   int64(p.Volume),
				WeightKg: kernel.Kilograms(p.Weight),
				VolumeM3: kernel.CubicMeters(p.Volume),
				BoxCount: p.BoxCount,
			}
		}
		response[i] = servers.ExpirationGroup{
			ExpireDate: toAPIDate(group.ExpireDate),
			Pallets:    pallets,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListShelfLife handles GET /api/v1/reports/shelf-life.
func (s *Server) ListShelfLife(ctx echo.Context, params servers.ListShelfLifeParams) error {
	limit := s.defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetTopPalletsByShelfLifeQuery(limit)
	if err != nil {
		return s.fail(ctx, err, "Invalid limit")
	}

	pallets, err := s.topHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to select pallets")
	}

	response := make([]servers.ShelfLifePallet, len(pallets))
	for i, p := range pallets {
		response[i] = servers.ShelfLifePallet{
			Id:               int64(p.ID),
			Volume:           int64(p.Volume),
			VolumeM3:         kernel.CubicMeters(p.Volume),
			LatestExpireDate: toAPIDate(p.LatestExpireDate),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListBoxes handles GET /api/v1/boxes.
func (s *Server) ListBoxes(ctx echo.Context) error {
	boxes, err := s.allBoxesHandler.Handle(ctx.Request().Context(), queries.NewGetAllBoxesQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve boxes")
	}

	response := make([]servers.Box, len(boxes))
	for i, b := range boxes {
		box := servers.Box{
			Id:         int64(b.ID),
			Width:      int64(b.Width),
			Height:     int64(b.Height),
			Depth:      int64(b.Depth),
			Weight:     int64(b.Weight),
			Volume:     int64(b.Volume),
			ExpireDate: toAPIDate(b.ExpireDate),
		}
		if b.ProductionDate != nil {
			production := toAPIDate(*b.ProductionDate)
			box.ProductionDate = &production
		}
		if b.PalletID != nil {
			palletID := int64(*b.PalletID)
			box.PalletId = &palletID
		}
		response[i] = box
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePallet handles POST /api/v1/pallets.
func (s *Server) CreatePallet(ctx echo.Context) error {
	var body servers.CreatePalletJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	width, height, depth, err := toDimensions(body.Width, body.Height, body.Depth)
	if err != nil {
		return s.fail(ctx, err, "Invalid pallet data")
	}

	cmd, err := commands.NewCreatePalletCommand(width, height, depth)
	if err != nil {
		return s.fail(ctx, err, "Invalid pallet data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.createPalletHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create pallet")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: int64(id)})
}

// CreateBox handles POST /api/v1/boxes.
func (s *Server) CreateBox(ctx echo.Context) error {
	var body servers.CreateBoxJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	width, height, depth, err := toDimensions(body.Width, body.Height, body.Depth)
	if err != nil {
		return s.fail(ctx, err, "Invalid box data")
	}
	weight, err := toUint32("weight", body.Weight)
	if err != nil {
		return s.fail(ctx, err, "Invalid box data")
	}

	cmd, err := commands.NewCreateBoxCommand(
		width, height, depth, weight,
		fromAPIDate(body.ProductionDate),
		fromAPIDate(body.ExpireDate),
	)
	if err != nil {
		return s.fail(ctx, err, "Invalid box data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.createBoxHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create box")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: int64(id)})
}

// AddBoxToPallet handles PUT /api/v1/pallets/{palletId}/boxes/{boxId}.
func (s *Server) AddBoxToPallet(ctx echo.Context, palletID servers.PalletId, boxID servers.BoxId) error {
	cmd, err := commands.NewAddBoxToPalletCommand(toID(palletID), toID(boxID))
	if err != nil {
		return s.fail(ctx, err, "Invalid placement")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.addBoxToPalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to put box on pallet")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveBoxFromPallet handles DELETE /api/v1/pallets/{palletId}/boxes/{boxId}.
func (s *Server) RemoveBoxFromPallet(ctx echo.Context, palletID servers.PalletId, boxID servers.BoxId) error {
	cmd, err := commands.NewRemoveBoxFromPalletCommand(toID(palletID), toID(boxID))
	if err != nil {
		return s.fail(ctx, err, "Invalid placement")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.removeBoxFromPalletHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to take box off pallet")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// fail writes err as a servers.Error. Domain failures carry their own message;
// anything else is logged and hidden behind summary.
func (s *Server) fail(ctx echo.Context, err error, summary string) error {
	code := statusOf(err)
	message := summary + ": " + err.Error()
	if code == http.StatusInternalServerError {
		s.log.Error(summary, "error", err, "path", ctx.Path())
		message = summary
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func statusOf(err error) int {
	switch {
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsState(err):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// toID maps non-positive values to the zero ID, which the commands reject as missing.
func toID(v int64) kernel.ID {
	if v <= 0 {
		return 0
	}
	return kernel.ID(v)
}

func toUint32(name string, v int64) (uint32, error) {
	if v < 0 || v > math.MaxUint32 {
		return 0, errs.NewValueIsOutOfRangeError(name, v, 0, uint32(math.MaxUint32))
	}
	return uint32(v), nil
}

func toDimensions(width, height, depth int64) (uint32, uint32, uint32, error) {
	w, errW := toUint32("width", width)
	h, errH := toUint32("height", height)
	d, errD := toUint32("depth", depth)
	if err := errors.Join(errW, errH, errD); err != nil {
		return 0, 0, 0, err
	}
	return w, h, d, nil
}

func toAPIDate(d kernel.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func fromAPIDate(d *openapi_types.Date) *kernel.Date {
	if d == nil {
		return nil
	}
	date := kernel.DateOf(d.Time)
	return &date
}
