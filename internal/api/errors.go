package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/service"
	"github.com/sanchezegido/recipedia/internal/types"
)

var kindStatus = map[service.Kind]int{
	service.KindValidation:       http.StatusBadRequest,
	service.KindNotFound:         http.StatusNotFound,
	service.KindUnauthorized:     http.StatusUnauthorized,
	service.KindConflict:         http.StatusConflict,
	service.KindUnsupportedMedia: http.StatusUnsupportedMediaType,
	service.KindInternal:         http.StatusInternalServerError,
}

// respondError writes err as the response. Field validation failures become a
// {field: message} object, coded failures a localized {code, message}, and
// not-found and unsupported-media responses carry no body.
func respondError(c *gin.Context, catalog *i18n.Catalog, logger *zap.Logger, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.KindInternal, Code: service.CodeInternal, Err: err}
	}
	status := kindStatus[se.Kind]

	switch {
	case se.Kind == service.KindInternal:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(se))
		writeCode(c, catalog, status, service.CodeInternal)
	case len(se.Fields) > 0:
		c.AbortWithStatusJSON(status, se.Fields)
	case se.Code != "":
		writeCode(c, catalog, status, se.Code)
	default:
		c.AbortWithStatus(status)
	}
}

func writeCode(c *gin.Context, catalog *i18n.Catalog, status int, code string) {
	lang := catalog.Match(c.GetHeader("Accept-Language"))
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Code:    code,
		Message: catalog.Message(lang, code),
	})
}

// invalidBody reports a request body that could not be decoded or validated
func invalidBody(c *gin.Context, catalog *i18n.Catalog, err error) {
	fields := service.FieldErrors(err)
	if _, undecodable := fields["body"]; undecodable {
		writeCode(c, catalog, http.StatusBadRequest, "INVALID_BODY")
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, fields)
}
