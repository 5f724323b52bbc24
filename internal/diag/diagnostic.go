package diag

import (
	"graphir/internal/source"
)

type Note struct {
	Location source.Location
	Msg      string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
}
