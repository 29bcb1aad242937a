package handler

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"flowboard/internal/apperror"
	"flowboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules and reports fields by
// their JSON names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

var fieldMessages = map[string]string{
	"name":    "Name is required",
	"title":   "Title is required",
	"label":   "Invalid label",
	"status":  "Invalid status",
	"boardId": "Invalid boardId",
}

// bindJSON decodes the body into req. An empty body leaves req zeroed.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	return err
}

func bindError(err error) error {
	if errors.Is(err, errInvalidDueDate) {
		return apperror.Validation("Invalid dueDate")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].Field()]; ok {
			return apperror.Validation(msg)
		}
	}
	return apperror.Validation("Invalid request body")
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(kind.Status(), ErrorResponse{Message: apperror.Message(err)})
}

func currentUser(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, logger, apperror.Auth("Unauthorized"))
	}
	return id, ok
}
