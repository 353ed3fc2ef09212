package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ParseID parses the named URI parameter as a UUID.
//
// On failure it writes the error response, the caller only needs to return.
func ParseID(c *gin.Context, param string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param(param))
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidUUID)
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// BindData binds the JSON request body to the struct passed in.
//
// On failure it writes the error response, the caller only needs to return.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, http.StatusBadRequest, ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}
