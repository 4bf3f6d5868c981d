package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlAccessoryID describes accessory UUID URL param.
	urlAccessoryID muxKeys = "accessoryID"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// routePublic describes unauthenticated api prefix.
	routePublic = "/pub"
)
