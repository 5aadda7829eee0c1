package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuild_Defaults(t *testing.T) {
	filter, opts := Build(url.Values{}, Config{})

	assert.Equal(t, bson.M{"deactivated": false}, filter)
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(5), opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Equal(t, "docs", opts.Labels.Docs)
}

func TestBuild_NoDefaultFilter(t *testing.T) {
	filter, _ := Build(url.Values{}, Config{DefaultFilter: NoDefaultFilter})
	assert.Empty(t, filter)
}

func TestBuild_DefaultFilterNotMutated(t *testing.T) {
	def := bson.M{"status": "published"}
	params := url.Values{"category": {"news"}}

	filter, _ := Build(params, Config{DefaultFilter: def})

	assert.Equal(t, "news", filter["category"])
	assert.Equal(t, bson.M{"status": "published"}, def)
}

func TestBuild_SearchSingleField(t *testing.T) {
	params := url.Values{"search": {"smith"}}
	filter, _ := Build(params, Config{SearchFields: []string{"fullName"}})

	assert.Equal(t, primitive.Regex{Pattern: "smith", Options: "i"}, filter["fullName"])
	assert.NotContains(t, filter, "$or")
}

func TestBuild_SearchMultiField(t *testing.T) {
	params := url.Values{"search": {"eye"}}
	filter, _ := Build(params, Config{SearchFields: []string{"fullName", "specialty"}})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, primitive.Regex{Pattern: "eye", Options: "i"}, or[0]["fullName"])
	assert.Equal(t, primitive.Regex{Pattern: "eye", Options: "i"}, or[1]["specialty"])
}

func TestBuild_SearchWithoutFieldsIgnored(t *testing.T) {
	params := url.Values{"search": {"anything"}}
	filter, _ := Build(params, Config{})
	assert.Equal(t, bson.M{"deactivated": false}, filter)
}

func TestBuild_Passthrough(t *testing.T) {
	params := url.Values{"status": {"active"}, "mainCategory": {"surgical"}}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	assert.Equal(t, "active", filter["status"])
	assert.Equal(t, "surgical", filter["mainCategory"])
}

func TestBuild_ReservedNamesNotPassedThrough(t *testing.T) {
	params := url.Values{
		"page":  {"3"},
		"limit": {"20"},
		"sort":  {"asc"},
		"q":     {"ignored"},
		"own":   {"true"},
	}
	filter, opts := Build(params, Config{DefaultFilter: NoDefaultFilter})

	assert.Empty(t, filter)
	assert.Equal(t, int64(3), opts.Page)
	assert.Equal(t, int64(20), opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, opts.Sort)
}

func TestBuild_UnFilterExcluded(t *testing.T) {
	params := url.Values{"status": {"active"}, "internal": {"x"}}
	filter, _ := Build(params, Config{
		DefaultFilter: NoDefaultFilter,
		UnFilter:      []string{"internal"},
	})

	assert.Equal(t, "active", filter["status"])
	assert.NotContains(t, filter, "internal")
}

func TestBuild_NumericRanges(t *testing.T) {
	params := url.Values{
		"minRating": {"3.5"},
		"maxRating": {"5"},
		"minFees":   {"100"},
	}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	assert.Equal(t, bson.M{"$gte": 3.5, "$lte": 5.0}, filter["rating"])
	assert.Equal(t, bson.M{"$gte": 100.0}, filter["consultationFees"])
}

func TestBuild_MalformedBoundDropped(t *testing.T) {
	params := url.Values{
		"minAge": {"abc"},
		"maxAge": {"60"},
	}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	assert.Equal(t, bson.M{"$lte": 60}, filter["patientAge"])
}

func TestBuild_AllBoundsMalformed(t *testing.T) {
	params := url.Values{
		"minPrice": {"x"},
		"maxPrice": {"y"},
	}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})
	assert.NotContains(t, filter, "price")
}

func TestBuild_DateRange(t *testing.T) {
	params := url.Values{
		"startDate": {"2026-01-01"},
		"endDate":   {"not-a-date"},
	}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	bounds, ok := filter["preferredDate"].(bson.M)
	require.True(t, ok)
	start, ok := bounds["$gte"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, start.Year())
	assert.NotContains(t, bounds, "$lte")
}

func TestBuild_SalaryRange(t *testing.T) {
	params := url.Values{"salary": {"1000,5000"}}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})
	assert.Equal(t, bson.M{"$gte": 1000.0, "$lte": 5000.0}, filter["salary"])

	params = url.Values{"salary": {"1000"}}
	filter, _ = Build(params, Config{DefaultFilter: NoDefaultFilter})
	assert.NotContains(t, filter, "salary")
}

func TestBuild_CityFilter(t *testing.T) {
	params := url.Values{"city": {"Mumbai"}}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})
	assert.Equal(t, primitive.Regex{Pattern: "Mumbai", Options: "i"}, filter["location.city"])
}

func TestBuild_ArrayFilters(t *testing.T) {
	params := url.Values{"specialties": {"cardiology, neurology , "}}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	in, ok := filter["specialties"].(bson.M)
	require.True(t, ok)
	patterns, ok := in["$in"].([]primitive.Regex)
	require.True(t, ok)
	require.Len(t, patterns, 2)
	assert.Equal(t, "cardiology", patterns[0].Pattern)
	assert.Equal(t, "neurology", patterns[1].Pattern)
}

func TestBuild_BooleanFiltersLiteralTrueOnly(t *testing.T) {
	params := url.Values{
		"is24Hours":  {"true"},
		"hasParking": {"1"},
	}
	filter, _ := Build(params, Config{DefaultFilter: NoDefaultFilter})

	assert.Equal(t, true, filter["is24Hours"])
	assert.NotContains(t, filter, "hasParking")
}

func TestBuild_CustomFiltersRunLast(t *testing.T) {
	params := url.Values{"status": {"active"}}
	filter, _ := Build(params, Config{
		DefaultFilter: NoDefaultFilter,
		CustomFilters: func(f bson.M, p url.Values) {
			f["status"] = bson.M{"$in": []string{"active", "pending"}}
		},
	})

	assert.Equal(t, bson.M{"$in": []string{"active", "pending"}}, filter["status"])
}

func TestBuild_InvalidPageAndLimitFallBack(t *testing.T) {
	params := url.Values{"page": {"-2"}, "limit": {"abc"}}
	_, opts := Build(params, Config{})

	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(5), opts.Limit)
}

func TestBuild_ConfiguredDefaultsUsed(t *testing.T) {
	_, opts := Build(url.Values{}, Config{Page: 2, Limit: 25})
	assert.Equal(t, int64(2), opts.Page)
	assert.Equal(t, int64(25), opts.Limit)
	assert.Equal(t, int64(25), opts.Skip())
}

func TestBuild_SortConfig(t *testing.T) {
	custom := bson.D{{Key: "rating", Value: -1}}
	_, opts := Build(url.Values{}, Config{Sort: custom})
	assert.Equal(t, custom, opts.Sort)

	_, opts = Build(url.Values{"sort": {"asc"}}, Config{Sort: custom})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, opts.Sort)
}
