// Package api serves the registry and dump controls over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/kernreg/internal/dump"
	"github.com/samcharles93/kernreg/internal/graph"
	"github.com/samcharles93/kernreg/internal/logger"
	"github.com/samcharles93/kernreg/internal/registry"
)

// maxNetworkBytes bounds uploaded network descriptions.
const maxNetworkBytes = 4 << 20

type Server struct {
	registry *registry.Registry
	networks *NetworkStore
	env      dump.Environment
	log      logger.Logger
	clock    func() time.Time
}

func NewServer(reg *registry.Registry, networks *NetworkStore, env dump.Environment, log logger.Logger) *Server {
	if networks == nil {
		networks = NewNetworkStore()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		registry: reg,
		networks: networks,
		env:      env,
		log:      log.With("component", "api"),
		clock:    time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/kernels", s.handleListKernels)
	e.GET("/v1/kernels/:name", s.handleGetKernels)
	e.POST("/v1/kernels/:name/select", s.handleSelectKernel)

	e.POST("/v1/networks", s.handleCreateNetwork)
	e.GET("/v1/networks/:id", s.handleGetNetwork)
	e.DELETE("/v1/networks/:id", s.handleDeleteNetwork)
	e.GET("/v1/networks/:id/dump", s.handleGetDump)
	e.POST("/v1/networks/:id/dump", s.handleSetDump)
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.JSONBlob(status, b)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": ErrorBody{Message: msg, Type: errType},
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

// writeErr maps domain errors onto HTTP statuses.
func writeErr(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, graph.ErrNoSuchMember), errors.Is(err, errNetworkNotFound):
		return writeNotFound(c, err.Error())
	case errors.Is(err, registry.ErrNoMatch):
		return writeError(c, http.StatusUnprocessableEntity, "no_match_error", err.Error())
	case errors.Is(err, dump.ErrUnsupportedOperation):
		return writeError(c, http.StatusForbidden, "unsupported_operation_error", err.Error())
	case errors.Is(err, dump.ErrInvalidArgument), errors.Is(err, registry.ErrInvalidArgument):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
