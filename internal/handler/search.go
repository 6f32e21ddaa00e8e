package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mcrbroker/carsearch/internal/availability"
	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/quotation"
)

type SearchHandler struct {
	service *availability.Service
	store   quotation.Store
}

func NewSearchHandler(service *availability.Service, store quotation.Store) *SearchHandler {
	return &SearchHandler{
		service: service,
		store:   store,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var criteria models.SearchCriteria
	if err := c.Bind(&criteria); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.service.Search(ctx, criteria)
	if err != nil {
		var validationErr models.ValidationError
		var domainErr models.DomainError
		switch {
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		case errors.As(err, &domainErr):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "domain_error",
				Message: err.Error(),
				Code:    http.StatusUnprocessableEntity,
			})
		default:
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "search_error",
				Message: "Failed to search availability: " + err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Metadata: models.SearchMetadata{
			TotalResults:    len(result.Quotation.Fleet),
			GroupsQueried:   result.GroupsQueried,
			GroupsSucceeded: result.GroupsSucceeded,
			GroupsFailed:    result.GroupsFailed,
			FailedGroups:    result.FailedGroups,
			SearchTimeMs:    time.Since(startTime).Milliseconds(),
		},
		Quotation: result.Quotation,
	})
}

func (h *SearchHandler) GetQuotation(c echo.Context) error {
	id := c.Param("id")

	q, ok := h.store.Get(c.Request().Context(), id)
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Quotation " + id + " does not exist or has expired",
			Code:    http.StatusNotFound,
		})
	}
	return c.JSON(http.StatusOK, q)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
