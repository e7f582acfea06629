package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/anyulbade/authlend-api/internal/dto"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports validation errors under the JSON (or query) name of the
// field.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Success(status, message, data))
}

func fail(c *gin.Context, status int, message string, fields map[string][]string) {
	c.JSON(status, dto.Failure(status, message, fields))
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		failValidation(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		failValidation(c, err)
		return false
	}
	return true
}

func failValidation(c *gin.Context, err error) {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		numErr  *strconv.NumError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			key := fieldPath(fe)
			fields[key] = append(fields[key], validationMessage(fe))
		}
		fail(c, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fail(c, http.StatusUnprocessableEntity, "The given data was invalid.", map[string][]string{
			typeErr.Field: {fmt.Sprintf("The %s field must be %s.", humanize(typeErr.Field), jsonKind(typeErr.Type))},
		})
	case errors.As(err, &numErr):
		fail(c, http.StatusUnprocessableEntity, "The given data was invalid.", map[string][]string{
			"query": {fmt.Sprintf("The value %q is not a valid number.", numErr.Num)},
		})
	default:
		fail(c, http.StatusUnprocessableEntity, "The request body could not be parsed.", nil)
	}
}

// fieldPath drops the root struct name: "StoreRequest.address.city" becomes
// "address.city".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func humanize(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return strings.ReplaceAll(field, "_", " ")
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	}
	return "a valid value"
}

func validationMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "gte", "min":
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "ip":
		return fmt.Sprintf("The %s field must be a valid IP address.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format YYYY-MM-DD.", name)
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

// pathID parses the :id route parameter; anything but a positive integer
// cannot name a row.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		fail(c, http.StatusNotFound, "Resource not found.", nil)
		return 0, false
	}
	return id, true
}
