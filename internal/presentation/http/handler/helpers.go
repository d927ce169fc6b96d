package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yumzee-api/internal/presentation/http/middleware"
	"github.com/sangkips/yumzee-api/pkg/apperror"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report json names instead of Go
// struct field names.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// requireAccount returns the caller's account ID or writes a 401
func requireAccount(c *gin.Context) (uuid.UUID, bool) {
	accountID := middleware.GetAccountID(c)
	if accountID == uuid.Nil {
		response.Unauthorized(c, "Authentication required")
		c.Abort()
		return uuid.Nil, false
	}
	return accountID, true
}

// bindingError converts a binding failure into a 422 with one entry per field,
// or a 400 when the body could not be decoded at all.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewBadRequestError("Invalid request body")
	}
	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: ruleMessage(fe),
		})
	}
	return apperror.NewValidationError(fields)
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "datetime":
		return "must match " + fe.Param()
	}
	return "failed on " + fe.Tag()
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, bindingError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, bindingError(err))
		return false
	}
	return true
}

// tableRequest resolves the caller and the :table_no path parameter
func tableRequest(c *gin.Context) (uuid.UUID, int, bool) {
	accountID, ok := requireAccount(c)
	if !ok {
		return uuid.Nil, 0, false
	}
	tableNo, err := parseTableParam(c)
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, 0, false
	}
	return accountID, tableNo, true
}

func parseUUIDParam(c *gin.Context, name, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + resource + " ID")
	}
	return id, nil
}

func parseTableParam(c *gin.Context) (int, error) {
	tableNo, err := strconv.Atoi(c.Param("table_no"))
	if err != nil {
		return 0, apperror.NewBadRequestError("Invalid table number")
	}
	return tableNo, nil
}

// dateRange turns since/until days in loc into a half-open UTC range. Until is
// inclusive of the whole day.
func dateRange(q request.DateRangeQuery, loc *time.Location) (*repository.DateRangeParams, error) {
	if q.Since == "" && q.Until == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	params := &repository.DateRangeParams{}
	if q.Since != "" {
		t, err := time.ParseInLocation("2006-01-02", q.Since, loc)
		if err != nil {
			return nil, apperror.NewFieldError("since", "must match 2006-01-02")
		}
		t = t.UTC()
		params.Since = &t
	}
	if q.Until != "" {
		t, err := time.ParseInLocation("2006-01-02", q.Until, loc)
		if err != nil {
			return nil, apperror.NewFieldError("until", "must match 2006-01-02")
		}
		t = t.AddDate(0, 0, 1).UTC()
		params.Until = &t
	}
	if params.Since != nil && params.Until != nil && !params.Since.Before(*params.Until) {
		return nil, apperror.NewFieldError("until", "must not be before since")
	}
	return params, nil
}
