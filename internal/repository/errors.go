package repository

import "errors"

var ErrWriterVanished = errors.New("writer was deleted while resolving its name")
