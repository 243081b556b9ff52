package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Guesthouse struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Thumbnail     string               `bson:"thumbnail" json:"thumbnail"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	ReviewsCount  int                  `bson:"reviews_count" json:"reviews_count"`
	PricePerNight primitive.Decimal128 `bson:"price_per_night" json:"price_per_night"`
	Currency      string               `bson:"currency" json:"currency"`
	PriceLabel    string               `bson:"price_label" json:"price_label"`
	Latitude      float64              `bson:"latitude" json:"latitude"`
	Longitude     float64              `bson:"longitude" json:"longitude"`
	URL           string               `bson:"url" json:"url"`
	City          string               `bson:"city" json:"city"`
	OwnerID       primitive.ObjectID   `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
}

type GuesthouseCreateRequest struct {
	Thumbnail   string  `json:"thumbnail"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       string  `json:"price" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	URL         string  `json:"url"`
	City        string  `json:"city" binding:"required"`
}

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// ParsePriceString turns a display price like "$50" or "120.50 TND" into an
// exact decimal rate plus the currency marker that was stripped away.
// Prices are parsed once at ingestion and stored structured, never re-parsed
// per calculation.
func ParsePriceString(price string) (decimal.Decimal, string, error) {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		return decimal.Decimal{}, "", ErrInvalidPrice
	}

	numeric := nonPriceChars.ReplaceAllString(trimmed, "")
	if numeric == "" {
		return decimal.Decimal{}, "", ErrInvalidPrice
	}

	rate, err := decimal.NewFromString(numeric)
	if err != nil {
		return decimal.Decimal{}, "", ErrInvalidPrice
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, "", ErrInvalidPrice
	}

	currency := strings.TrimSpace(strings.Join(nonPriceChars.FindAllString(trimmed, -1), ""))
	return rate, currency, nil
}
