package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/senyabanana/rfq-service/internal/models"
)

// ParseLimitOffset parses limit and offset query values with defaults.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 20
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// SendErrorResponse writes an error as JSON.
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSON writes a payload as JSON with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err)
	}
}

// ContainsQuoteStatus reports whether a quote status is in the given set.
func ContainsQuoteStatus(statuses []models.QuoteStatus, status models.QuoteStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ContainsBidStatus reports whether a bid status is in the given set.
func ContainsBidStatus(statuses []models.BidStatus, status models.BidStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidISODate reports whether s matches YYYY-MM-DD.
func ValidISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// TrimAndLimit trims whitespace and reports whether the result fits maxLen.
func TrimAndLimit(s string, maxLen int) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, len(trimmed) <= maxLen
}
