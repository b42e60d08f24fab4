package repositories

import "errors"

var ErrInterviewNotFound = errors.New("interview not found")
