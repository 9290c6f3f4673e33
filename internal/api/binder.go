package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v2"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Binder binds path, query and body like echo's default binder, additionally
// accepts YAML bodies and validates the result.
type Binder struct {
	echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	if isYAML(c.Request().Header.Get(echo.HeaderContentType)) {
		if err := b.BindPathParams(c, i); err != nil {
			return err
		}
		if err := bindYAML(c, i); err != nil {
			return err
		}
	} else if err := b.DefaultBinder.Bind(i, c); err != nil {
		return err
	}

	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func isYAML(contentType string) bool {
	return strings.HasPrefix(contentType, "application/yaml") ||
		strings.HasPrefix(contentType, "application/x-yaml") ||
		strings.HasPrefix(contentType, "text/yaml")
}

func bindYAML(c echo.Context, i interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read body").SetInternal(err)
	}
	if err = yaml.Unmarshal(body, i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("yaml: %s", err.Error())).SetInternal(err)
	}
	return nil
}

// sonicSerializer is echo's JSON serializer backed by sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("json: %s", err.Error())).SetInternal(err)
	}
	return nil
}
