// Package errors provides a lightweight structured error type for
// category-based classification of assembly failures and the top-level
// reporting policy.
package errors

import (
	"fmt"
	"log/slog"
)

// Category classifies an assembly error.
type Category string

const (
	// CategoryConfig covers configuration loading and validation.
	CategoryConfig Category = "config"
	// CategoryParse covers malformed front matter or data files.
	CategoryParse Category = "parse"
	// CategoryClassify covers registry classification problems, notably
	// fragment id collisions.
	CategoryClassify Category = "classify"
	// CategoryRender covers template compilation and rendering.
	CategoryRender Category = "render"
	// CategoryFilesystem covers reads and writes of content and output.
	CategoryFilesystem Category = "filesystem"
	// CategoryExport covers the optional legacy CMS export.
	CategoryExport Category = "export"
	// CategoryInternal is the fallback for everything else.
	CategoryInternal Category = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // aborts the run
	SeverityError   Severity = "error"   // fails the current file or stage
	SeverityWarning Severity = "warning" // reported, processing continues
)

// AssemblyError is a structured error with category, severity and context.
type AssemblyError struct {
	Category Category
	Severity Severity
	Message  string
	Cause    error
	Context  map[string]any
}

// Error implements the error interface, preserving the cause's detail.
func (e *AssemblyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *AssemblyError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context field to the error.
func (e *AssemblyError) WithContext(key string, value any) *AssemblyError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new AssemblyError.
func New(category Category, severity Severity, message string) *AssemblyError {
	return &AssemblyError{Category: category, Severity: severity, Message: message}
}

// Wrap creates a new AssemblyError around an existing error.
func Wrap(err error, category Category, severity Severity, message string) *AssemblyError {
	return &AssemblyError{Category: category, Severity: severity, Message: message, Cause: err}
}

// Parse fails a single file with its path attached.
func Parse(path string, err error) *AssemblyError {
	return Wrap(err, CategoryParse, SeverityError, fmt.Sprintf("parse %s", path)).
		WithContext("path", path)
}

// Collision reports two source files normalizing to the same fragment id.
func Collision(id, firstPath, secondPath string) *AssemblyError {
	return New(CategoryClassify, SeverityError,
		fmt.Sprintf("fragment id %q claimed by both %s and %s", id, firstPath, secondPath)).
		WithContext("fragment", id).
		WithContext("first", firstPath).
		WithContext("second", secondPath)
}

// EmptyID reports a source file whose name normalizes to an empty fragment
// id. Empty identifiers are fine for display names but a fragment cannot be
// registered, or later included, under one.
func EmptyID(path string) *AssemblyError {
	return New(CategoryClassify, SeverityError,
		fmt.Sprintf("source %s normalizes to an empty fragment id", path)).
		WithContext("path", path)
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category Category) bool {
	ae, ok := err.(*AssemblyError)
	return ok && ae.Category == category
}

// GetCategory extracts the category from an error, defaulting to internal.
func GetCategory(err error) Category {
	if ae, ok := err.(*AssemblyError); ok {
		return ae.Category
	}
	return CategoryInternal
}

// Handle reports err through the configured channels: the caller-supplied
// callback and/or the error log. Both may fire. It returns true when at
// least one channel fired; callers terminate only on false.
func Handle(err error, callback func(error), logErrors bool) bool {
	if err == nil {
		return true
	}

	fired := false
	if callback != nil {
		callback(err)
		fired = true
	}
	if logErrors {
		slog.Error("Assembly failed", "category", string(GetCategory(err)), "error", err)
		fired = true
	}
	return fired
}
