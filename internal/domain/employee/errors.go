package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmailExists          = errors.New("email already registered")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotDraft             = errors.New("employee is not in onboarding")
	ErrOnboardingIncomplete = errors.New("onboarding steps incomplete")
)
