package soil

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoMapUnits is returned when a report lists no map units.
var ErrNoMapUnits = errors.New("report contains no map units")

// MapUnit is one soil map unit of a component legend report.
type MapUnit struct {
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	Acres       float64 `json:"acres"`
}

// ParseReport extracts the map-unit rows of an SDA report and sorts them
// by acreage, largest first. The first cell holds "symbol--description";
// the second holds the acreage, possibly with thousands separators.
func ParseReport(r io.Reader) ([]MapUnit, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	var units []MapUnit
	doc.Find("tr.mapunit").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		name := strings.TrimSpace(cells.Eq(0).Text())
		symbol, desc, _ := strings.Cut(name, "--")
		// Only the text between the first and second separator is the description.
		desc, _, _ = strings.Cut(desc, "--")

		acresText := strings.ReplaceAll(strings.TrimSpace(cells.Eq(1).Text()), ",", "")
		acres, err := strconv.ParseFloat(acresText, 64)
		if err != nil {
			acres = 0
		}

		units = append(units, MapUnit{
			Symbol:      strings.TrimSpace(symbol),
			Description: strings.TrimSpace(desc),
			Acres:       acres,
		})
	})

	if len(units) == 0 {
		return nil, ErrNoMapUnits
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Acres > units[j].Acres
	})
	return units, nil
}
