package api

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/kernreg/internal/registry"
)

func (s *Server) handleListKernels(c *echo.Context) error {
	names := s.registry.Names()
	if backend := c.QueryParam("backend"); backend != "" {
		names = slices.DeleteFunc(names, func(name string) bool {
			backends, err := s.registry.Backends(name)
			return err != nil || !slices.Contains(backends, backend)
		})
	}
	return writeJSON(c, http.StatusOK, KernelList{Object: "list", Data: names})
}

func (s *Server) handleGetKernels(c *echo.Context) error {
	name := c.Param("name")
	descs, err := s.registry.Lookup(name)
	if err != nil {
		return writeErr(c, err)
	}
	return writeJSON(c, http.StatusOK, KernelsResponse{Name: name, Kernels: descs})
}

func (s *Server) handleSelectKernel(c *echo.Context) error {
	name := c.Param("name")
	req, err := decodeJSON[SelectRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(req.Inputs) == 0 && len(req.Outputs) == 0 {
		return writeBadRequest(c, "inputs or outputs must be provided")
	}
	sel, err := s.registry.Select(name, req.Inputs, req.Outputs, registry.SelectOptions{
		Backend:      req.Backend,
		DynamicShape: req.DynamicShape,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return writeJSON(c, http.StatusOK, SelectResponse{Name: name, Selection: sel})
}
