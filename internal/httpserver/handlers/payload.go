package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report fields under their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register notblank validator: %v", err))
	}
}

// Index is a position in the document. Browsers posting form values send
// positions as strings, so both 3 and "3" are accepted.
type Index int

func (i *Index) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", b)
	}
	*i = Index(n)
	return nil
}

type addCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=256"`
}

type addSiteRequest struct {
	CategoryIndex *Index `json:"categoryIndex" validate:"required"`
	SiteName      string `json:"siteName" validate:"required,notblank,max=256"`
	SiteURL       string `json:"siteUrl" validate:"required,notblank,max=2048"`
	SiteIcon      string `json:"siteIcon" validate:"max=512"`
}

type deleteCategoryRequest struct {
	CategoryIndex *Index `json:"categoryIndex" validate:"required"`
}

type deleteSiteRequest struct {
	CategoryIndex *Index `json:"categoryIndex" validate:"required"`
	SiteIndex     *Index `json:"siteIndex" validate:"required"`
}

type editSiteRequest struct {
	CategoryIndex *Index `json:"categoryIndex" validate:"required"`
	SiteIndex     *Index `json:"siteIndex" validate:"required"`
	SiteName      string `json:"siteName" validate:"required,notblank,max=256"`
	SiteURL       string `json:"siteUrl" validate:"required,notblank,max=2048"`
	SiteIcon      string `json:"siteIcon" validate:"max=512"`
}

type moveSiteRequest struct {
	CategoryIndex       *Index `json:"categoryIndex" validate:"required"`
	SiteIndex           *Index `json:"siteIndex" validate:"required"`
	TargetCategoryIndex *Index `json:"targetCategoryIndex" validate:"required"`
	SiteName            string `json:"siteName" validate:"required,notblank,max=256"`
	SiteURL             string `json:"siteUrl" validate:"required,notblank,max=2048"`
	SiteIcon            string `json:"siteIcon" validate:"max=512"`
}

// decodeBody reads a bounded JSON body into dst and validates it.
// Every failure is reported as a *domain.PayloadError.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return payloadError(err)
	}
	if dec.More() {
		return &domain.PayloadError{Reason: "body must contain a single JSON object"}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &domain.PayloadError{Field: fe.Field(), Reason: describeTag(fe)}
		}
		return &domain.PayloadError{Reason: err.Error()}
	}
	return nil
}

func payloadError(err error) error {
	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		return &domain.PayloadError{Reason: fmt.Sprintf("body exceeds %d bytes", maxErr.Limit)}
	case errors.As(err, &syntaxErr):
		return &domain.PayloadError{Reason: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		return &domain.PayloadError{Field: typeErr.Field, Reason: "wrong type"}
	case errors.Is(err, io.EOF):
		return &domain.PayloadError{Reason: "empty body"}
	default:
		return &domain.PayloadError{Reason: err.Error()}
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return "exceeds " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func site(name, url, icon string) domain.Site {
	return domain.Site{
		Name: strings.TrimSpace(name),
		URL:  strings.TrimSpace(url),
		Icon: strings.TrimSpace(icon),
	}
}
