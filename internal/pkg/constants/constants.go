package constants

const (
	EnvPrefix = "FIELDECON"

	QueryParamCurrency  = "currency"
	QueryParamPrecision = "precision"

	HeaderRequestID = "X-Request-ID"

	MaxPrecision = 6
)
