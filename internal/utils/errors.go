package utils

import "errors"

// ErrUserInitiatedExit is returned when the user asked for something which
// ends the run early without failing, such as the help text.
var ErrUserInitiatedExit = errors.New("user initiated exit")
