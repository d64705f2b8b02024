package entity

import "time"

// Event is an announcement rendered by one of the site's layouts.
// Each optional block has a toggle deciding whether the layout shows it.
type Event struct {
	ID               string    `json:"_id"`
	Layout           string    `json:"layoutSelected"`
	Date             time.Time `json:"date"`
	Title            string    `json:"title"`
	BGImage          string    `json:"BGImage"`
	BGImageCheck     bool      `json:"BGImageCheck"`
	FGImage1         string    `json:"FGImage1"`
	FGImage1Check    bool      `json:"FGImage1Check"`
	FGImage2         string    `json:"FGImage2"`
	FGImage2Check    bool      `json:"FGImage2Check"`
	Heading1         string    `json:"Heading1"`
	Heading1Check    bool      `json:"Heading1Check"`
	Heading2         string    `json:"Heading2"`
	Heading2Check    bool      `json:"Heading2Check"`
	Paragraph        string    `json:"Paragraph"`
	ParagraphCheck   bool      `json:"ParagraphCheck"`
	CTAText          string    `json:"ctaText"`
	CTATextCheck     bool      `json:"ctaTextCheck"`
	RegistrationLink string    `json:"registrationLink"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
