package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

const listingsCSV = `thumbnail,title,description,rating/reviewsCount,price/price,price/label,coordinates/latitude,coordinates/longitude,url,city
https://img/1.jpg,Dar Sidi Bou Said,Sea view terrace,42,$50,$50 per night,36.8675,10.3467,https://listing/1,Sidi Bou Said
https://img/2.jpg,Dar El Medina,Courtyard riad,17,120.50 TND,120.50 TND per night,36.7989,10.1658,https://listing/2,Tunis
https://img/3.jpg,Broken Row,No price here,n/a,,per night,0,0,https://listing/3,Sfax
https://img/4.jpg,Short Row,missing columns
`

func TestImportGuesthouses(t *testing.T) {
	repo := newFakeGuesthouseRepo()
	service := NewCsvImportService(repo, newTestLogger())

	result, err := service.ImportGuesthouses(context.Background(), strings.NewReader(listingsCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	guesthouses, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, guesthouses, 2)

	byTitle := make(map[string]*domain.Guesthouse)
	for _, gh := range guesthouses {
		byTitle[gh.Title] = gh
	}

	first := byTitle["Dar Sidi Bou Said"]
	require.NotNil(t, first)
	rate, err := domain.PrimitiveToDecimal(first.PricePerNight)
	require.NoError(t, err)
	assert.Equal(t, "50", rate.String())
	assert.Equal(t, "$", first.Currency)
	assert.Equal(t, 42, first.ReviewsCount)
	assert.Equal(t, "Sidi Bou Said", first.City)
	assert.InDelta(t, 36.8675, first.Latitude, 0.0001)

	second := byTitle["Dar El Medina"]
	require.NotNil(t, second)
	rate, err = domain.PrimitiveToDecimal(second.PricePerNight)
	require.NoError(t, err)
	assert.Equal(t, "120.5", rate.String())
	assert.Equal(t, "TND", second.Currency)
}

func TestImportGuesthousesEmptyInput(t *testing.T) {
	repo := newFakeGuesthouseRepo()
	service := NewCsvImportService(repo, newTestLogger())

	_, err := service.ImportGuesthouses(context.Background(), strings.NewReader(""))
	assert.Error(t, err, "a dataset without a header line is not importable")
}
