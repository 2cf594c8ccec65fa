package api

import (
	"github.com/goccy/go-json"

	"github.com/samcharles93/kernreg/internal/dump"
	"github.com/samcharles93/kernreg/internal/kernel"
	"github.com/samcharles93/kernreg/internal/registry"
)

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type KernelList struct {
	Object string   `json:"object"`
	Data   []string `json:"data"`
}

type KernelsResponse struct {
	Name    string              `json:"name"`
	Kernels []kernel.Descriptor `json:"kernels"`
}

type SelectRequest struct {
	Inputs       []kernel.DataType `json:"inputs"`
	Outputs      []kernel.DataType `json:"outputs"`
	Backend      string            `json:"backend,omitempty"`
	DynamicShape bool              `json:"dynamic_shape,omitempty"`
}

type SelectResponse struct {
	Name string `json:"name"`
	registry.Selection
}

// NetworkResponse describes an uploaded network. Unregistered lists
// operators with no kernel in the registry.
type NetworkResponse struct {
	ID           string      `json:"id"`
	Object       string      `json:"object"`
	Name         string      `json:"name"`
	CreatedAt    int64       `json:"created_at"`
	Operators    []string    `json:"operators"`
	Unregistered []string    `json:"unregistered,omitempty"`
	Flags        []dump.Flag `json:"flags"`
}

// DumpRequest targets a member path; an empty target is the whole network.
// Enabled defaults to true when omitted.
type DumpRequest struct {
	Target  string          `json:"target"`
	Enabled json.RawMessage `json:"enabled,omitempty"`
}

type DumpResponse struct {
	Network string      `json:"network"`
	Object  string      `json:"object"`
	Data    []dump.Flag `json:"data"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
