package handlers

import (
	"strconv"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// pagination reads page/limit query params with sane defaults
func pagination(c echo.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// bindAndValidate decodes the request body and runs struct validation,
// normalizing failures into the validation error kind
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}
