package services

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

// expected CSV column order of the cleaned listings dataset:
// thumbnail, title, description, rating/reviewsCount, price/price,
// price/label, coordinates/latitude, coordinates/longitude, url, city
const guesthouseCSVColumns = 10

type CsvImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// CsvImportService loads guesthouse listings from the cleaned CSV dataset.
// Display prices are parsed into structured amounts here, once, at ingestion.
type CsvImportService struct {
	guesthouseRepo repository.GuesthouseRepository
	logger         *logrus.Logger
}

func NewCsvImportService(guesthouseRepo repository.GuesthouseRepository, logger *logrus.Logger) *CsvImportService {
	return &CsvImportService{
		guesthouseRepo: guesthouseRepo,
		logger:         logger,
	}
}

func (cs *CsvImportService) ImportGuesthousesFromFile(ctx context.Context, filePath string) (*CsvImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return cs.ImportGuesthouses(ctx, file)
}

func (cs *CsvImportService) ImportGuesthouses(ctx context.Context, r io.Reader) (*CsvImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	result := &CsvImportResult{}
	var guesthouses []*domain.Guesthouse

	lineNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNumber++
		if err != nil {
			cs.logger.WithFields(logrus.Fields{"path": "services/csvimport", "line": lineNumber}).Warn("Skipping unreadable line: ", err)
			result.Skipped++
			continue
		}

		if len(record) < guesthouseCSVColumns {
			cs.logger.WithFields(logrus.Fields{"path": "services/csvimport", "line": lineNumber}).
				Warnf("Skipping line, %d columns found, %d expected", len(record), guesthouseCSVColumns)
			result.Skipped++
			continue
		}

		guesthouse, err := guesthouseFromRecord(record)
		if err != nil {
			cs.logger.WithFields(logrus.Fields{"path": "services/csvimport", "line": lineNumber}).Warn("Skipping line: ", err)
			result.Skipped++
			continue
		}

		guesthouses = append(guesthouses, guesthouse)
	}

	inserted, err := cs.guesthouseRepo.InsertMany(ctx, guesthouses)
	if err != nil {
		return nil, err
	}
	result.Imported = inserted

	cs.logger.WithFields(logrus.Fields{"path": "services/csvimport"}).
		Infof("Guesthouse import finished: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

func guesthouseFromRecord(record []string) (*domain.Guesthouse, error) {
	rate, currency, err := domain.ParsePriceString(record[4])
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = strings.TrimSpace(record[5])
	}

	return &domain.Guesthouse{
		Thumbnail:     cleanString(record[0]),
		Title:         cleanString(record[1]),
		Description:   cleanString(record[2]),
		ReviewsCount:  parseIntSafe(record[3]),
		PricePerNight: domain.DecimalToPrimitive(rate),
		Currency:      currency,
		PriceLabel:    cleanString(record[4]),
		Latitude:      parseFloatSafe(record[6]),
		Longitude:     parseFloatSafe(record[7]),
		URL:           cleanString(record[8]),
		City:          cleanString(record[9]),
	}, nil
}

func cleanString(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

func parseIntSafe(s string) int {
	value, err := strconv.Atoi(cleanString(s))
	if err != nil {
		return 0
	}
	return value
}

func parseFloatSafe(s string) float64 {
	value, err := strconv.ParseFloat(cleanString(s), 64)
	if err != nil {
		return 0
	}
	return value
}
