package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/kernreg/internal/dump"
	"github.com/samcharles93/kernreg/internal/graph"
	"github.com/samcharles93/kernreg/internal/logger"
)

func (s *Server) handleCreateNetwork(c *echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxNetworkBytes+1))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(body) > maxNetworkBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "network description too large")
	}
	root, err := graph.Decode(body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	now := s.clock()
	id := s.networks.Create(root, now)
	resp := s.describe(id, root, now)
	if len(resp.Unregistered) > 0 {
		s.log.Warn("network uses operators without kernels", "network", id, "operators", resp.Unregistered)
	}
	s.log.Info("network created", "network", id, "name", root.Name(), "primitives", len(resp.Flags))
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleGetNetwork(c *echo.Context) error {
	id := c.Param("id")
	var resp NetworkResponse
	err := s.networks.With(id, func(root *graph.Cell, createdAt time.Time) error {
		resp = s.describe(id, root, createdAt)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleDeleteNetwork(c *echo.Context) error {
	id := c.Param("id")
	if !s.networks.Delete(id) {
		return writeNotFound(c, fmt.Sprintf("%s: %s", errNetworkNotFound, id))
	}
	return writeJSON(c, http.StatusOK, DeleteResponse{ID: id, Object: "network.deleted", Deleted: true})
}

func (s *Server) handleGetDump(c *echo.Context) error {
	id := c.Param("id")
	var resp DumpResponse
	err := s.networks.With(id, func(root *graph.Cell, _ time.Time) error {
		resp = DumpResponse{Network: id, Object: "list", Data: dump.Collect(root)}
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleSetDump(c *echo.Context) error {
	id := c.Param("id")
	req, err := decodeJSON[DumpRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	var enabled any = true
	if len(req.Enabled) > 0 {
		if err := json.Unmarshal(req.Enabled, &enabled); err != nil {
			return writeBadRequest(c, err.Error())
		}
	}

	ctx := logger.WithContext(c.Request().Context(), s.log.With("network", id))
	var resp NetworkResponse
	err = s.networks.With(id, func(root *graph.Cell, createdAt time.Time) error {
		if err := setDump(ctx, s.env, root, req.Target, enabled); err != nil {
			return err
		}
		resp = s.describe(id, root, createdAt)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return writeJSON(c, http.StatusOK, resp)
}

func setDump(ctx context.Context, env dump.Environment, root *graph.Cell, path string, enabled any) error {
	if err := dump.CheckSecurity(env); err != nil {
		return err
	}
	target, err := graph.Resolve(root, path)
	if err != nil {
		return err
	}
	return dump.SetDumpValue(ctx, env, target, enabled)
}

func (s *Server) describe(id string, root *graph.Cell, createdAt time.Time) NetworkResponse {
	ops := graph.Operators(root)
	var unregistered []string
	if s.registry != nil {
		for _, op := range ops {
			if _, err := s.registry.Lookup(op); err != nil {
				unregistered = append(unregistered, op)
			}
		}
	}
	return NetworkResponse{
		ID:           id,
		Object:       "network",
		Name:         root.Name(),
		CreatedAt:    createdAt.Unix(),
		Operators:    ops,
		Unregistered: unregistered,
		Flags:        dump.Collect(root),
	}
}
