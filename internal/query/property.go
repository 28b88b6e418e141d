package query

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/deppfellow/lightbnb/internal/errs"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	MinRating = 0
	MaxRating = 5

	// MaxPricePerNight is the largest whole-unit price whose cent value
	// still fits the integer cost_per_night column.
	MaxPricePerNight = math.MaxInt32 / 100
)

// Search filter keys.
const (
	FilterCity                 = "city"
	FilterMinimumRating        = "minimum_rating"
	FilterMaximumPricePerNight = "maximum_price_per_night"
	FilterMinimumPricePerNight = "minimum_price_per_night"
	FilterOwnerID              = "owner_id"
	FilterParkingSpaces        = "parking_spaces"
	FilterNumberOfBathrooms    = "number_of_bathrooms"
	FilterNumberOfBedrooms     = "number_of_bedrooms"
)

// PropertyColumns is every column of the properties table, in table order.
var PropertyColumns = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"thumbnail_photo_url",
	"cover_photo_url",
	"cost_per_night",
	"parking_spaces",
	"number_of_bathrooms",
	"number_of_bedrooms",
	"country",
	"street",
	"city",
	"province",
	"post_code",
	"active",
}

// equalityFilters are the integer columns searchable by exact match.
var equalityFilters = map[string]bool{
	FilterOwnerID:           true,
	FilterParkingSpaces:     true,
	FilterNumberOfBathrooms: true,
	FilterNumberOfBedrooms:  true,
}

// insertableColumns is PropertyColumns without the generated id.
var insertableColumns = func() map[string]bool {
	m := make(map[string]bool, len(PropertyColumns)-1)
	for _, c := range PropertyColumns[1:] {
		m[c] = true
	}
	return m
}()

// SearchFilters lists the accepted search keys in sorted order.
func SearchFilters() []string {
	keys := []string{
		FilterCity,
		FilterMinimumRating,
		FilterMaximumPricePerNight,
		FilterMinimumPricePerNight,
	}
	for k := range equalityFilters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeLimit applies the default and the upper bound.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Qualify prefixes each column with table.
func Qualify(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}

// AverageRating is the aggregate column appended to property reads.
const AverageRating = "AVG(property_reviews.rating)::float8 AS average_rating"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func isSearchFilter(key string) bool {
	switch key {
	case FilterCity, FilterMinimumRating, FilterMaximumPricePerNight, FilterMinimumPricePerNight:
		return true
	}
	return equalityFilters[key]
}

// BuildPropertySearch builds the filtered property listing.
//
// Every key must be a known filter; unknown keys fail with InvalidInput
// before any SQL is produced. Keys are applied in sorted order and empty
// values are skipped. A minimum_rating of "0" is a real filter.
//
//	SELECT properties.*, AVG(property_reviews.rating)::float8 AS average_rating
//	FROM properties JOIN property_reviews ON ...
//	[WHERE ...] GROUP BY properties.id [HAVING ...]
//	ORDER BY properties.cost_per_night LIMIT $n
func BuildPropertySearch(opts map[string]string, limit int) (Statement, error) {
	keys := make([]string, 0, len(opts))
	var unknown []errs.FieldError
	for k := range opts {
		if !isSearchFilter(k) {
			unknown = append(unknown, errs.FieldError{Field: k, Error: "is not a supported filter"})
			continue
		}
		keys = append(keys, k)
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i].Field < unknown[j].Field })
		return Statement{}, errs.NewInvalidInputError("Unsupported search filter", true, nil, unknown)
	}
	sort.Strings(keys)

	columns := append(Qualify("properties", PropertyColumns), AverageRating)
	b := Select(columns...).
		From("properties").
		Join("JOIN property_reviews ON properties.id = property_reviews.property_id")

	for _, key := range keys {
		value := opts[key]
		if value == "" {
			continue
		}

		switch key {
		case FilterCity:
			b.Where("properties.city ILIKE ?", "%"+EscapeLike(value)+"%")

		case FilterMinimumRating:
			rating, err := parseInt(key, value)
			if err != nil {
				return Statement{}, err
			}
			if rating < MinRating || rating > MaxRating {
				return Statement{}, errs.InvalidField(key, fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
			}
			b.Having("AVG(property_reviews.rating) >= ?", rating)

		case FilterMaximumPricePerNight, FilterMinimumPricePerNight:
			price, err := parseInt(key, value)
			if err != nil {
				return Statement{}, err
			}
			if price < 0 {
				return Statement{}, errs.InvalidField(key, "must not be negative")
			}
			if price > MaxPricePerNight {
				return Statement{}, errs.InvalidField(key, fmt.Sprintf("must not exceed %d", MaxPricePerNight))
			}
			// Prices are given in whole units and stored in cents.
			if key == FilterMaximumPricePerNight {
				b.Where("properties.cost_per_night < ?", price*100)
			} else {
				b.Where("properties.cost_per_night > ?", price*100)
			}

		default:
			n, err := parseInt(key, value)
			if err != nil {
				return Statement{}, err
			}
			b.Where("properties."+key+" = ?", n)
		}
	}

	b.GroupBy("properties.id").
		OrderBy("properties.cost_per_night").
		Limit(NormalizeLimit(limit))

	// HAVING is rendered after GROUP BY regardless of call order.
	return b.ToSQL(), nil
}

// BuildPropertyInsert builds the INSERT for a new property.
//
// Keys must be property columns other than id. Columns are emitted in
// sorted order and the full row is returned.
func BuildPropertyInsert(record map[string]any) (Statement, error) {
	if len(record) == 0 {
		return Statement{}, errs.NewInvalidInputError("Property record is empty", true, nil, nil)
	}

	keys := make([]string, 0, len(record))
	var unknown []errs.FieldError
	for k := range record {
		if !insertableColumns[k] {
			unknown = append(unknown, errs.FieldError{Field: k, Error: "is not a property column"})
			continue
		}
		keys = append(keys, k)
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i].Field < unknown[j].Field })
		return Statement{}, errs.NewInvalidInputError("Unknown property column", true, nil, unknown)
	}
	sort.Strings(keys)

	b := Insert("properties")
	for _, k := range keys {
		b.Set(k, record[k])
	}
	return b.Returning(PropertyColumns...).ToSQL(), nil
}

// parseInt parses value as an integer that fits the database's integer
// columns.
func parseInt(key, value string) (int, error) {
	n, problem := parseInt32(value)
	if problem != "" {
		return 0, errs.InvalidField(key, problem)
	}
	return n, nil
}

func parseInt32(value string) (int, string) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, "is out of range"
		}
		return 0, "must be an integer"
	}
	return int(n), ""
}

// integerColumns and booleanColumns type the insertable property columns;
// every other insertable column is text.
var (
	integerColumns = map[string]bool{
		"owner_id":            true,
		"cost_per_night":      true,
		"parking_spaces":      true,
		"number_of_bathrooms": true,
		"number_of_bedrooms":  true,
	}
	booleanColumns = map[string]bool{
		"active": true,
	}
)

// ParsePropertyRecord converts textual column values (as given on a command
// line) into a record for BuildPropertyInsert, typing integer and boolean
// columns. Unknown columns are rejected.
func ParsePropertyRecord(raw map[string]string) (map[string]any, error) {
	record := make(map[string]any, len(raw))
	var problems []errs.FieldError

	for k, v := range raw {
		switch {
		case !insertableColumns[k]:
			problems = append(problems, errs.FieldError{Field: k, Error: "is not a property column"})
		case integerColumns[k]:
			n, problem := parseInt32(v)
			if problem != "" {
				problems = append(problems, errs.FieldError{Field: k, Error: problem})
				continue
			}
			record[k] = n
		case booleanColumns[k]:
			b, err := strconv.ParseBool(v)
			if err != nil {
				problems = append(problems, errs.FieldError{Field: k, Error: "must be true or false"})
				continue
			}
			record[k] = b
		default:
			record[k] = v
		}
	}

	if len(problems) > 0 {
		sort.Slice(problems, func(i, j int) bool { return problems[i].Field < problems[j].Field })
		return nil, errs.NewInvalidInputError("Invalid property record", true, nil, problems)
	}
	return record, nil
}
