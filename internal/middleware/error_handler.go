package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/dto"
	"github.com/anyulbade/authlend-api/internal/service"
)

// MapError turns a handler error into the status, message and field errors
// of the response envelope.
func MapError(err error) (int, string, map[string][]string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode(), svcErr.Message, svcErr.Fields
	}
	return MapDBError(err)
}

func MapDBError(err error) (int, string, map[string][]string) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, "Resource not found.", nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, "Resource already exists.", detail(pgErr)
		case "23503": // foreign_key_violation
			return http.StatusUnprocessableEntity, "Referenced resource does not exist.", detail(pgErr)
		case "23514": // check_violation
			return http.StatusBadRequest, "Constraint violation.", detail(pgErr)
		case "22003": // numeric_value_out_of_range
			return http.StatusUnprocessableEntity, "Value out of range.", nil
		}
	}

	return http.StatusInternalServerError, "Internal server error.", nil
}

func detail(pgErr *pgconn.PgError) map[string][]string {
	if pgErr.Detail == "" {
		return nil
	}
	return map[string][]string{"detail": {pgErr.Detail}}
}

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message, fields := MapError(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("request_id", RequestID(c)).Msg("unhandled error")
		}
		c.JSON(status, dto.Failure(status, message, fields))
	}
}
