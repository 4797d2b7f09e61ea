package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-facing labels. Unlisted fields
// fall back to a spaced version of the field name.
var FieldLabels = map[string]string{
	"name":                 "Name",
	"email":                "Email",
	"password":             "Password",
	"phone":                "Phone number",
	"companyName":          "Company name",
	"idToken":              "Google ID token",
	"code":                 "Verification code",
	"title":                "Title",
	"description":          "Description",
	"jobType":              "Job type",
	"skillsRequired":       "Required skills",
	"location":             "Location",
	"pinCode":              "PIN code",
	"salary":               "Salary",
	"status":               "Status",
	"expiresAt":            "Expiry date",
	"category":             "Category",
	"message":              "Message",
	"contentType":          "Content type",
	"key":                  "Document key",
	"website":              "Website",
	"industry":             "Industry",
	"profilePicture":       "Profile picture",
	"resume":               "Resume",
	"verificationDocument": "Verification document",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", label, param)
	case "lte":
		return fmt.Sprintf("%s: must be less than or equal to %s", label, param)
	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_name":
		return fmt.Sprintf("%s: may only contain letters, numbers, spaces and . ' - / & ( ) ,", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (3-15 digits, optional leading +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "otp_code":
		return fmt.Sprintf("%s: must be 6 digits", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
