package models

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateClick(click Click) error {
	if click.TargetURL == "" {
		return &ValidationError{
			Field:   "targetUrl",
			Message: "click target URL is required",
		}
	}

	if click.ElementID == "" {
		return &ValidationError{
			Field:   "elementId",
			Message: "click element ID is required",
		}
	}

	return nil
}

func ValidateRequest(req Request) error {
	if req.RequestID == "" {
		return &ValidationError{
			Field:   "requestId",
			Message: "request ID is required",
		}
	}

	return nil
}

func ValidateInsertion(ins Insertion) error {
	if ins.InsertionID == "" {
		return &ValidationError{
			Field:   "insertionId",
			Message: "insertion ID is required",
		}
	}

	return nil
}

func ValidateImpression(imp Impression) error {
	if imp.ImpressionID == "" {
		return &ValidationError{
			Field:   "impressionId",
			Message: "impression ID is required",
		}
	}

	return nil
}
