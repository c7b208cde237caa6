package riskkit

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// InspectionError represents a failure while reading one part of a sheet.
type InspectionError struct {
	SheetName string
	Component string // "cells", "tables", "drawings", "print_areas"
	Err       error
}

func (e *InspectionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("inspection error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("inspection error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *InspectionError) Unwrap() error {
	return e.Err
}

// NewInspectionError creates a new InspectionError.
func NewInspectionError(sheetName, component string, err error) *InspectionError {
	return &InspectionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
