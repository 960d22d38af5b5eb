package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrUnsupportedFormat indicates an input file whose extension no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyInput indicates a source file with no worksheet, no header row or no data row.
var ErrEmptyInput = errors.New("empty or malformed input")
