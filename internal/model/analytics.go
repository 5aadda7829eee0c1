package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// RevenueBucket is one period of completed-appointment revenue.
type RevenueBucket struct {
	Period  string  `bson:"_id" json:"period"`
	Count   int64   `bson:"count" json:"count"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// PerformanceBucket groups appointment volume and revenue under a doctor or
// clinic. Name is joined from the referenced document and stays empty for
// appointments booked without one.
type PerformanceBucket struct {
	ID        *primitive.ObjectID `bson:"_id" json:"id"`
	Name      string              `bson:"name,omitempty" json:"name,omitempty"`
	Total     int64               `bson:"total" json:"total"`
	Completed int64               `bson:"completed" json:"completed"`
	Revenue   float64             `bson:"revenue" json:"revenue"`
}

// ContentTotals summarizes a content collection.
type ContentTotals struct {
	Total         int64   `bson:"total" json:"total"`
	TotalViews    int64   `bson:"views" json:"totalViews"`
	AverageRating float64 `bson:"avgRating" json:"averageRating"`
}

// ContentPerformance carries the requested content summaries; a nil section
// was not asked for.
type ContentPerformance struct {
	Blogs   *ContentTotals `json:"blogs,omitempty"`
	Stories *ContentTotals `json:"stories,omitempty"`
}

// GeographicDistribution counts entities per city, busiest first.
type GeographicDistribution struct {
	Appointments []NameCount `json:"appointments,omitempty"`
	Doctors      []NameCount `json:"doctors,omitempty"`
	Clinics      []NameCount `json:"clinics,omitempty"`
}
