package utils

import (
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"github.com/gobwas/glob"
	"gopkg.in/go-playground/validator.v9"
)

// HomeKit refuses these setup codes.
var forbiddenPins = map[string]bool{
	"00000000": true,
	"11111111": true,
	"22222222": true,
	"33333333": true,
	"44444444": true,
	"55555555": true,
	"66666666": true,
	"77777777": true,
	"88888888": true,
	"99999999": true,
	"12345678": true,
	"87654321": true,
}

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "port", port)
	loadNewValidator(v, logger, "pin", pin)
	loadNewValidator(v, logger, "glob", globPattern)

	val.validator = v
	return val
}

// Validate sets defaults and performs validation of a config object.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)

	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err == nil {
		return true
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		v.logger.Error("Failed to validate object", err)
		return false
	}

	for _, e := range errs {
		v.logger.Warn("Validation error", common.LogFieldToken, e.Namespace())
	}

	return false
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	return isPort(fl.Field().Int())
}

// HomeKit setup code validation.
func pin(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if 8 != len(p) || forbiddenPins[p] {
		return false
	}

	for _, c := range p {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// Glob expression validation.
func globPattern(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// Validates whether value could be used as a port.
func isPort(val int64) bool {
	return val > 0 && val <= 65535
}

// Attempt to register a new validator
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
