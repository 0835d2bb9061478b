package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"blindbuy-escrow/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:]+$`)
	hash32Re     = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
	hexBytesRe   = regexp.MustCompile(`^0x([0-9a-fA-F]{2})+$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("hash32", validateHash32)
		_ = v.RegisterValidation("hexbytes", validateHexBytes)
		_ = v.RegisterValidation("ether_amount", validateEtherAmount)
		_ = v.RegisterValidation("uint_str", validateUintString)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, dot and colon.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateHash32 accepts a 0x-prefixed 32-byte handle.
func validateHash32(fl validator.FieldLevel) bool {
	return hash32Re.MatchString(fl.Field().String())
}

// validateHexBytes accepts non-empty 0x-prefixed byte strings.
func validateHexBytes(fl validator.FieldLevel) bool {
	return hexBytesRe.MatchString(fl.Field().String())
}

// validateEtherAmount accepts positive decimal ether amounts representable in wei.
func validateEtherAmount(fl validator.FieldLevel) bool {
	v, err := domain.ParseEther(fl.Field().String())
	return err == nil && !v.IsZero()
}

// validateUintString accepts positive base-10 integers up to 256 bits.
func validateUintString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || strings.HasPrefix(s, "+") || (len(s) > 1 && s[0] == '0') {
		return false
	}
	v, err := uint256.FromDecimal(s)
	return err == nil && !v.IsZero()
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
