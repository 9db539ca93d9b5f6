package visits

// MediaItem is a photo or video stored for a visit.
type MediaItem struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// RawVisit is the vendor service's visit record.
type RawVisit struct {
	VisitID       string      `json:"visit_id"`
	ClientID      string      `json:"client_id"`
	VendorID      string      `json:"vendor_id"`
	ContactName   string      `json:"contact_name"`
	ContactPhone  string      `json:"contact_phone"`
	VisitDatetime string      `json:"visit_datetime"`
	Observations  string      `json:"observations"`
	BucketData    []MediaItem `json:"bucket_data"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

type CreateRequest struct {
	ClientID      string      `json:"client_id"`
	VendorID      string      `json:"vendor_id"`
	ContactName   string      `json:"contact_name"`
	ContactPhone  string      `json:"contact_phone"`
	VisitDatetime string      `json:"visit_datetime"`
	Observations  string      `json:"observations"`
	BucketData    []MediaItem `json:"bucket_data"`
}

type Institution struct {
	ID       string
	Name     string
	Country  string
	Location string
}

// Item is a visit joined with its institution, ready for display.
type Item struct {
	VisitID      string
	Institution  Institution
	VisitedAt    string
	Observations string
	ContactName  string
	MediaItems   []MediaItem
}

type SearchResult struct {
	Total  int
	Visits []Item
}
