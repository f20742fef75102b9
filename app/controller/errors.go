package controller

import "errors"

var (
	errMissingColor = errors.New("color is required")
	errUnknownDye   = errors.New("dye not found")
	errInvalidHex   = errors.New("expected a dye ID or a hex color like #A1B2C3")
)
