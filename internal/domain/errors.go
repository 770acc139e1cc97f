package domain

import "errors"

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateProduct    = errors.New("product already exists in catalog")
	ErrDuplicateInvoiceNo  = errors.New("invoice number already registered")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed    = errors.New("document extraction failed")
	ErrParserNotConfigured = errors.New("no document parser configured")
)
