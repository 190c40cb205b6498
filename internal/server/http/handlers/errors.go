package handlers

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/pkg/auth"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

const internalMessage = "internal error"

// writeError renders err as the JSON error envelope with the status of its category.
func writeError(c *gin.Context, err error) {
	var (
		conflict *domainErrors.StockConflictError
		missing  *domainErrors.MissingProductsError
	)

	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		abort(c, http.StatusUnprocessableEntity, dto.CodeValidation, err.Error(), nil)
	case errors.As(err, &missing):
		abort(c, http.StatusNotFound, dto.CodeNotFound, missing.Error(), dto.MissingProductsDetail{Missing: missing.Codes})
	case errors.Is(err, domainErrors.ErrNotFound):
		abort(c, http.StatusNotFound, dto.CodeNotFound, err.Error(), nil)
	case errors.As(err, &conflict):
		abort(c, http.StatusConflict, dto.CodeStockConflict, conflict.Error(), dto.StockConflictDetail{
			Code:      conflict.Code,
			Requested: conflict.Requested,
			Available: conflict.Available,
		})
	case errors.Is(err, domainErrors.ErrAlreadyExists), errors.Is(err, domainErrors.ErrConflict):
		abort(c, http.StatusConflict, dto.CodeConflict, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidToken):
		abort(c, http.StatusUnauthorized, dto.CodeUnauthorized, auth.ErrInvalidToken.Error(), nil)
	case errors.Is(err, domainErrors.ErrUnavailable) && errors.Is(err, context.DeadlineExceeded):
		abort(c, http.StatusGatewayTimeout, dto.CodeTimeout, err.Error(), nil)
	case errors.Is(err, domainErrors.ErrUnavailable):
		abort(c, http.StatusBadGateway, dto.CodeBadGateway, err.Error(), nil)
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, dto.CodeInternal, internalMessage, nil)
	}
}

func abort(c *gin.Context, status int, code, message string, detail any) {
	resp := dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: message}}
	if detail != nil {
		resp.Detail = detail
	}
	c.AbortWithStatusJSON(status, resp)
}

// bindJSON decodes the request body and reports a malformed body as a validation failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abort(c, http.StatusUnprocessableEntity, dto.CodeValidation, "malformed request body: "+err.Error(), nil)
		return false
	}
	return true
}
