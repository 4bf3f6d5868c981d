package providers

// IValidatorProvider defines yaml structures validator logic.
type IValidatorProvider interface {
	Validate(interface{}) bool
}
