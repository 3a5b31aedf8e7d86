package weather

import "weatherproxy.app/pkg/errors"

var errMissingCoordinates = errors.NewValidationError(MissingCoordinatesMessage)
