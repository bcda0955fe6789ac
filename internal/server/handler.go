// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

// ConvertRequest is the body of POST /api/v1/convert. Empty formats and
// versions take the configured defaults.
type ConvertRequest struct {
	InputText     string        `json:"inputText"`
	InputFormat   types.Format  `json:"inputFormat"`
	OutputFormat  types.Format  `json:"outputFormat"`
	InputVersion  types.Version `json:"inputVersion"`
	OutputVersion types.Version `json:"outputVersion"`
}

// SampleResponse is the data of GET /api/v1/sample.
type SampleResponse struct {
	SampleText string `json:"sampleText"`
}

// FormatsResponse is the data of GET /api/v1/formats.
type FormatsResponse struct {
	Formats  []types.Format  `json:"formats"`
	Versions []types.Version `json:"versions"`
}

// Handler serves the conversion endpoints.
type Handler struct {
	converter *convert.Converter
	registry  *codec.Registry
	defaults  types.ConvertConfig
	log       logrus.FieldLogger
}

// NewHandler creates a Handler.
func NewHandler(conv *convert.Converter, reg *codec.Registry, defaults types.ConvertConfig, log logrus.FieldLogger) *Handler {
	return &Handler{converter: conv, registry: reg, defaults: defaults, log: log}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Formats lists supported formats and versions.
func (h *Handler) Formats(c *gin.Context) {
	RespondOK(c, FormatsResponse{Formats: h.registry.Formats(), Versions: types.Versions})
}

// Convert handles POST /api/v1/convert.
func (h *Handler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, http.StatusRequestEntityTooLarge, APIError{Code: "BODY_TOO_LARGE", Message: err.Error()})
			return
		}
		RespondError(c, http.StatusBadRequest, APIError{Code: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	res, err := h.converter.Convert(h.options(req))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	RespondOK(c, res)
}

// Sample handles GET /api/v1/sample?format=&version=.
func (h *Handler) Sample(c *gin.Context) {
	format := types.Format(c.DefaultQuery("format", string(h.defaults.OutputFormat)))
	version := types.Version(c.DefaultQuery("version", string(h.defaults.OutputVersion)))

	text, err := h.converter.Sample(format, version)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	RespondOK(c, SampleResponse{SampleText: text})
}

func (h *Handler) options(req ConvertRequest) convert.Options {
	opts := convert.Options{
		InputText:     req.InputText,
		InputFormat:   req.InputFormat,
		OutputFormat:  req.OutputFormat,
		InputVersion:  req.InputVersion,
		OutputVersion: req.OutputVersion,
	}
	if opts.InputFormat == "" {
		opts.InputFormat = h.defaults.InputFormat
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = h.defaults.OutputFormat
	}
	if opts.InputVersion == "" {
		opts.InputVersion = h.defaults.InputVersion
	}
	if opts.OutputVersion == "" {
		opts.OutputVersion = h.defaults.OutputVersion
	}
	return opts
}
