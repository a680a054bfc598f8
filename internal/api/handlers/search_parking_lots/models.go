package search_parking_lots

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

// ParseQuery собирает параметры поиска из query string
// ?city=Colombo&location=Fort&maxPrice=150&availableOnly=true
func ParseQuery(q url.Values) (models.SearchRequest, error) {
	var req models.SearchRequest

	if city := strings.TrimSpace(q.Get("city")); city != "" {
		req.City = &city
	}
	if location := strings.TrimSpace(q.Get("location")); location != "" {
		req.Location = &location
	}

	if raw := strings.TrimSpace(q.Get("maxPrice")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return models.SearchRequest{}, fmt.Errorf("maxPrice: %w", err)
		}
		req.MaxPrice = &price
	}

	if raw := strings.TrimSpace(q.Get("availableOnly")); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return models.SearchRequest{}, fmt.Errorf("availableOnly: %w", err)
		}
		req.AvailableOnly = available
	}

	return req, nil
}
