package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UniqueIDService provides ID generation functionality
type UniqueIDService struct{}

// NewUniqueIDService creates a new UniqueIDService
func NewUniqueIDService() *UniqueIDService {
	return &UniqueIDService{}
}

// GenerateID creates an ID with the following pattern:
//   - The provided prefix (e.g., 'T' for team)
//   - Followed by 2 random digits [0-9]
//   - Followed by 9 random alphanumeric [0-9a-z]
//
// Example output with prefix 'T': T12ABC345XY
func (s *UniqueIDService) GenerateID(prefix string) (string, error) {
	digits := "0123456789"
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	twoDigits, err := gonanoid.Generate(digits, 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate two digits: %w", err)
	}

	nineAlnum, err := gonanoid.Generate(alnum, 9)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + nineAlnum), nil
}

// GenerateRandomColor creates a random 6-digit hex color code.
// Example output: "A1B2C3"
func (s *UniqueIDService) GenerateRandomColor() (string, error) {
	hexDigits := "0123456789abcdef"

	color, err := gonanoid.Generate(hexDigits, 6)
	if err != nil {
		return "", fmt.Errorf("failed to generate random color: %w", err)
	}

	return strings.ToUpper(color), nil
}

// UniqueIDSvc is the shared instance.
var UniqueIDSvc = NewUniqueIDService()

// GenerateUniqueID generates an ID through the shared instance.
func GenerateUniqueID(prefix string) (string, error) {
	return UniqueIDSvc.GenerateID(prefix)
}
