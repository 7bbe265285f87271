// internal/workers/recommendation/build-sake-response/models.go
package buildsakeresponse

import (
	"sake-reco/internal/catalog"
	"sake-reco/internal/models"
)

type Input struct {
	RequestID    string                `json:"requestId,omitempty"`
	Results      []models.RankedResult `json:"results"`
	Preferences  *models.Preferences   `json:"preferences,omitempty"`
	CatalogState *catalog.State        `json:"catalogState,omitempty"`
}

type ServeTemp struct {
	Key   models.TempKey `json:"key"`
	Label string         `json:"label"`
}

// DisplayItem is one ranked card. PurchaseURL is empty and PurchaseEnabled
// false when the item has neither an affiliate nor an item URL.
type DisplayItem struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Brewery         string      `json:"brewery,omitempty"`
	Prefecture      string      `json:"prefecture,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	Rank            int         `json:"rank"`
	Score           float64     `json:"score"`
	PurchaseEnabled bool        `json:"purchaseEnabled"`
	PurchaseURL     string      `json:"purchaseUrl,omitempty"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	StyleTags       []string    `json:"styleTags"`
	TasteTags       []string    `json:"tasteTags"`
	ServeTemp       []ServeTemp `json:"serveTemp"`
}

type Output struct {
	RequestID string        `json:"requestId"`
	Count     int           `json:"count"`
	Items     []DisplayItem `json:"items"`
	Summary   string        `json:"summary"`
	// Message is shown instead of the list when Items is empty.
	Message string `json:"message"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}
