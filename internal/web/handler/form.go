package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/objectstore"
)

// errInvalidID is returned by ParamID for missing, malformed or zero ids.
var errInvalidID = errors.New("invalid id")

// NewValidator returns a validator knowing the category_color tag.
func NewValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation("category_color", func(fl validator.FieldLevel) bool {
		return models.IsCategoryColor(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// FieldError returns the struct field and tag of the first validation failure.
func FieldError(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}

	return verrs[0].StructField(), verrs[0].Tag(), true
}

// ParamID parses the :id path parameter.
func ParamID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return id, nil
}

// FormFile reads the uploaded file of field. It returns nil without error
// when the request carries no file for field. Files larger than maxSize are
// refused before being read completely.
func FormFile(c *fiber.Ctx, field string, maxSize int64) (*objectstore.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil //nolint:nilerr // not a multipart request, so no file
	}

	headers := form.File[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}

	fh := headers[0]
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", objectstore.ErrFileTooLarge, fh.Size, maxSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", field, err)
	}

	return &objectstore.File{Name: fh.Filename, Data: data}, nil
}

// ImageError turns an image validation failure into a user message.
func ImageError(err error) string {
	switch {
	case errors.Is(err, objectstore.ErrFileTooLarge):
		return "L'image ne doit pas dépasser 5MB"
	case errors.Is(err, objectstore.ErrNotAnImage), errors.Is(err, objectstore.ErrEmptyFile):
		return "Veuillez sélectionner une image valide"
	default:
		return "Erreur lors de l'envoi de l'image"
	}
}
