package parallax

import "github.com/zeebo/errs"

// Error is the class for invalid layer and section configuration.
var Error = errs.Class("parallax")
