// Package query translates HTTP query parameters into MongoDB filters and
// pagination options. Building never errors: malformed values are dropped
// and defaults applied, so every request yields a usable query.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// NoDefaultFilter disables the implicit {deactivated: false} base filter.
var NoDefaultFilter = bson.M{}

// Labels names the keys of a paginated response payload.
type Labels struct {
	Docs       string
	TotalDocs  string
	TotalPages string
	Page       string
	Limit      string
}

// DefaultLabels returns the standard pagination key names.
func DefaultLabels() Labels {
	return Labels{
		Docs:       "docs",
		TotalDocs:  "totalDocs",
		TotalPages: "totalPages",
		Page:       "page",
		Limit:      "limit",
	}
}

// Populate asks the repository layer to resolve a referenced document: the
// local Path field is joined against the From collection's _id and embedded
// under As. Select is an optional projection applied after the join.
type Populate struct {
	Path   string
	From   string
	As     string
	Select bson.M
}

// Config controls how Build interprets the request parameters.
type Config struct {
	Page          int64
	Limit         int64
	SearchFields  []string
	UnFilter      []string
	CustomFilters func(filter bson.M, params url.Values)
	Labels        *Labels
	Populate      []Populate
	Select        bson.M
	Sort          bson.D
	DefaultFilter bson.M
}

// Options carries pagination, sorting and projection settings alongside the
// built filter.
type Options struct {
	Page     int64
	Limit    int64
	Sort     bson.D
	Labels   Labels
	Populate []Populate
	Select   bson.M
}

// Skip returns the number of documents to skip for the current page.
func (o Options) Skip() int64 {
	return (o.Page - 1) * o.Limit
}

// reservedNames are parameters consumed by the builder itself and never
// passed through as equality filters.
var reservedNames = map[string]struct{}{
	"page": {}, "limit": {}, "search": {}, "sort": {},
	"city": {}, "salary": {}, "own": {},
	"minPrice": {}, "maxPrice": {}, "budget": {},
	"minRating": {}, "maxRating": {},
	"minFees": {}, "maxFees": {},
	"minAge": {}, "maxAge": {},
	"startDate": {}, "endDate": {},
	"lat": {}, "lng": {}, "radius": {},
	"q": {}, "filters": {}, "location": {}, "dateRange": {},
	"specialties": {}, "cities": {}, "facilities": {},
	"amenities": {}, "diseasesTreated": {},
	"isVisitingDoctor": {}, "isHospitalDoctor": {}, "isEmergencyCenter": {},
	"is24Hours": {}, "hasParking": {}, "hasWheelchairAccess": {},
}

var arrayFilterFields = []string{"specialties", "cities", "facilities", "amenities", "diseasesTreated"}

var booleanFilterFields = []string{
	"isVisitingDoctor", "isHospitalDoctor", "isEmergencyCenter",
	"is24Hours", "hasParking", "hasWheelchairAccess",
}

// Build assembles a MongoDB filter and pagination options from raw query
// parameters. The steps run in a fixed order so later stages can override
// earlier ones; the caller's CustomFilters callback always runs last.
func Build(params url.Values, cfg Config) (bson.M, Options) {
	filter := baseFilter(cfg.DefaultFilter)

	applySearch(filter, params, cfg.SearchFields)
	applyNamedFilters(filter, params)
	applyPassthrough(filter, params, cfg.UnFilter)

	if cfg.CustomFilters != nil {
		cfg.CustomFilters(filter, params)
	}

	return filter, buildOptions(params, cfg)
}

func baseFilter(def bson.M) bson.M {
	if def == nil {
		return bson.M{"deactivated": false}
	}
	copied := bson.M{}
	for k, v := range def {
		copied[k] = v
	}
	return copied
}

func applySearch(filter bson.M, params url.Values, fields []string) {
	term := params.Get("search")
	if term == "" || len(fields) == 0 {
		return
	}
	if len(fields) == 1 {
		filter[fields[0]] = iRegex(term)
		return
	}
	clauses := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: iRegex(term)})
	}
	filter["$or"] = clauses
}

func applyNamedFilters(filter bson.M, params url.Values) {
	if city := params.Get("city"); city != "" {
		filter["location.city"] = iRegex(city)
	}

	if salary := params.Get("salary"); salary != "" {
		parts := strings.Split(salary, ",")
		if len(parts) == 2 {
			rangeFloat(filter, "salary", parts[0], parts[1])
		}
	}

	if budget := params.Get("budget"); budget != "" {
		if v, err := strconv.ParseFloat(budget, 64); err == nil {
			filter["budget"] = bson.M{"$gte": v}
		}
	}

	rangeFloat(filter, "price", params.Get("minPrice"), params.Get("maxPrice"))
	rangeFloat(filter, "rating", params.Get("minRating"), params.Get("maxRating"))
	rangeFloat(filter, "consultationFees", params.Get("minFees"), params.Get("maxFees"))
	rangeInt(filter, "patientAge", params.Get("minAge"), params.Get("maxAge"))
	rangeDate(filter, "preferredDate", params.Get("startDate"), params.Get("endDate"))

	for _, field := range arrayFilterFields {
		raw := params.Get(field)
		if raw == "" {
			continue
		}
		var patterns []primitive.Regex
		for _, item := range strings.Split(raw, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				patterns = append(patterns, iRegex(item))
			}
		}
		if len(patterns) > 0 {
			filter[field] = bson.M{"$in": patterns}
		}
	}

	for _, field := range booleanFilterFields {
		if params.Get(field) == "true" {
			filter[field] = true
		}
	}
}

func applyPassthrough(filter bson.M, params url.Values, unFilter []string) {
	skip := make(map[string]struct{}, len(unFilter))
	for _, name := range unFilter {
		skip[name] = struct{}{}
	}
	for key, values := range params {
		if _, ok := reservedNames[key]; ok {
			continue
		}
		if _, ok := skip[key]; ok {
			continue
		}
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}
}

func buildOptions(params url.Values, cfg Config) Options {
	page := parsePositive(params.Get("page"), cfg.Page, DefaultPage)
	limit := parsePositive(params.Get("limit"), cfg.Limit, DefaultLimit)

	sort := cfg.Sort
	if sort == nil {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	if params.Get("sort") == "asc" {
		sort = bson.D{{Key: "createdAt", Value: 1}}
	}

	labels := DefaultLabels()
	if cfg.Labels != nil {
		labels = *cfg.Labels
	}

	return Options{
		Page:     page,
		Limit:    limit,
		Sort:     sort,
		Labels:   labels,
		Populate: cfg.Populate,
		Select:   cfg.Select,
	}
}

func parsePositive(raw string, configured, fallback int64) int64 {
	if raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			return v
		}
	}
	if configured > 0 {
		return configured
	}
	return fallback
}

func iRegex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: "i"}
}

// rangeFloat writes a $gte/$lte bound for each parseable end. A malformed
// bound is dropped without disturbing the other.
func rangeFloat(filter bson.M, field, minRaw, maxRaw string) {
	bounds := bson.M{}
	if minRaw != "" {
		if v, err := strconv.ParseFloat(minRaw, 64); err == nil {
			bounds["$gte"] = v
		}
	}
	if maxRaw != "" {
		if v, err := strconv.ParseFloat(maxRaw, 64); err == nil {
			bounds["$lte"] = v
		}
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}

func rangeInt(filter bson.M, field, minRaw, maxRaw string) {
	bounds := bson.M{}
	if minRaw != "" {
		if v, err := strconv.Atoi(minRaw); err == nil {
			bounds["$gte"] = v
		}
	}
	if maxRaw != "" {
		if v, err := strconv.Atoi(maxRaw); err == nil {
			bounds["$lte"] = v
		}
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}

func rangeDate(filter bson.M, field, startRaw, endRaw string) {
	bounds := bson.M{}
	if startRaw != "" {
		if t, err := parseDate(startRaw); err == nil {
			bounds["$gte"] = t
		}
	}
	if endRaw != "" {
		if t, err := parseDate(endRaw); err == nil {
			bounds["$lte"] = t
		}
	}
	if len(bounds) > 0 {
		filter[field] = bounds
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
