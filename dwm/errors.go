// errors.go - construction-time error sentinels

package dwm

import "errors"

// ErrInvalidGeometry is returned by NewMesh3D when width, height, depth or
// sample rate is not strictly positive.
var ErrInvalidGeometry = errors.New("dwm: width, height, depth and sample rate must all be greater than zero")

// ErrUnknownParameter is returned by HostParams.Set and HostParams.Get when
// the parameter index has no meaning for the calling host.
var ErrUnknownParameter = errors.New("dwm: parameter index out of range")
