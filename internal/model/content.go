package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PublishStatus string

const (
	PublishStatusDraft     PublishStatus = "draft"
	PublishStatusPublished PublishStatus = "published"
	PublishStatusArchived  PublishStatus = "archived"
)

func (s PublishStatus) Valid() bool {
	switch s {
	case PublishStatusDraft, PublishStatusPublished, PublishStatusArchived:
		return true
	}
	return false
}

type Blog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Subtitle   string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Content    string             `bson:"content" json:"content"`
	Excerpt    string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Author     string             `bson:"author" json:"author"`
	Date       time.Time          `bson:"date" json:"date"`
	ReadTime   string             `bson:"readTime,omitempty" json:"readTime,omitempty"`
	Category   string             `bson:"category" json:"category"`
	Views      int64              `bson:"views" json:"views"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Tags       []string           `bson:"tags" json:"tags"`
	Featured   bool               `bson:"featured" json:"featured"`
	Status     PublishStatus      `bson:"status" json:"status"`
	Slug       string             `bson:"slug" json:"slug"`
	Timestamps `bson:",inline"`
}

type CreateBlogRequest struct {
	Title    string        `json:"title" binding:"required"`
	Subtitle string        `json:"subtitle"`
	Content  string        `json:"content" binding:"required"`
	Excerpt  string        `json:"excerpt"`
	Author   string        `json:"author" binding:"required"`
	ReadTime string        `json:"readTime"`
	Category string        `json:"category"`
	Image    string        `json:"image"`
	Tags     []string      `json:"tags"`
	Featured bool          `json:"featured"`
	Status   PublishStatus `json:"status"`
}

type PatientStory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Age        int                `bson:"age,omitempty" json:"age,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Condition  string             `bson:"condition" json:"condition"`
	Treatment  string             `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Surgery    string             `bson:"surgery,omitempty" json:"surgery,omitempty"`
	Doctor     string             `bson:"doctor,omitempty" json:"doctor,omitempty"`
	Rating     int                `bson:"rating" json:"rating"`
	Date       time.Time          `bson:"date" json:"date"`
	Story      string             `bson:"story" json:"story"`
	Outcome    string             `bson:"outcome,omitempty" json:"outcome,omitempty"`
	Category   string             `bson:"category,omitempty" json:"category,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Featured   bool               `bson:"featured" json:"featured"`
	Verified   bool               `bson:"verified" json:"verified"`
	Status     PublishStatus      `bson:"status" json:"status"`
	Timestamps `bson:",inline"`
}

type CreatePatientStoryRequest struct {
	Name      string        `json:"name" binding:"required"`
	Age       int           `json:"age"`
	Location  string        `json:"location"`
	Condition string        `json:"condition" binding:"required"`
	Treatment string        `json:"treatment"`
	Surgery   string        `json:"surgery"`
	Doctor    string        `json:"doctor"`
	Rating    int           `json:"rating" binding:"gte=1,lte=5"`
	Story     string        `json:"story" binding:"required"`
	Outcome   string        `json:"outcome"`
	Category  string        `json:"category"`
	Image     string        `json:"image"`
	Featured  bool          `json:"featured"`
	Status    PublishStatus `json:"status"`
}

// Treatment holds an ophthalmology content page keyed by its url slug
type Treatment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL         string             `bson:"url" json:"url"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Overview    []TreatmentSection `bson:"overview,omitempty" json:"overview,omitempty"`
	Diagnosis   string             `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Treatment   string             `bson:"treatment,omitempty" json:"treatment,omitempty"`
	WhyChooseUs []string           `bson:"whyChooseUs,omitempty" json:"whyChooseUs,omitempty"`
	FAQ         []TreatmentFAQ     `bson:"faq,omitempty" json:"faq,omitempty"`
	Status      PublishStatus      `bson:"status" json:"status"`
	Timestamps  `bson:",inline"`
}

type TreatmentSection struct {
	Heading string `bson:"heading" json:"heading"`
	Body    string `bson:"body" json:"body"`
}

type TreatmentFAQ struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

type CreateTreatmentRequest struct {
	URL         string             `json:"url" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Overview    []TreatmentSection `json:"overview"`
	Diagnosis   string             `json:"diagnosis"`
	Treatment   string             `json:"treatment"`
	WhyChooseUs []string           `json:"whyChooseUs"`
	FAQ         []TreatmentFAQ     `json:"faq"`
	Status      PublishStatus      `json:"status"`
}
