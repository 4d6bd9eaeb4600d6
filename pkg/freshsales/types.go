package freshsales

// View ids and page sizes matching the Freshworks account this client was
// built against. Views are server-side saved filters; override them per
// service via Config.
const (
	// DefaultContactsViewID selects the default contacts listing view.
	DefaultContactsViewID = "402014829835"

	// DefaultDealsViewID selects the default deals listing view.
	DefaultDealsViewID = "402014829847"

	// DefaultPerPage is the API's default listing page size.
	DefaultPerPage = 25

	// AggregatePerPage is the page size used when walking a full listing.
	AggregatePerPage = 100

	// DefaultMaxPages bounds full-listing aggregation.
	DefaultMaxPages = 100
)

// Record is a raw CRM record as returned by the API. Freshworks payloads
// are schemaless from the client's perspective, so records stay dynamic
// maps; field reads use a get-with-default idiom and absence is never an
// error.
type Record = map[string]any

// ListPage is one listing response: the records for that page, the related
// user records the API returned alongside them, and pagination metadata.
type ListPage struct {
	Contacts []Record       `json:"contacts"`
	Deals    []Record       `json:"deals"`
	Users    []Record       `json:"users"`
	Meta     map[string]any `json:"meta"`
}

// ListOptions controls a single listing request.
type ListOptions struct {
	// Page is the 1-based page number. Zero means page 1.
	Page int

	// PerPage is the page size. Zero means DefaultPerPage.
	PerPage int

	// ViewID overrides the service's configured view for this request.
	ViewID string

	// Include is passed through to the API verbatim (e.g. "owner"). Its
	// effect on the response shape is up to the API.
	Include string

	// Sort field for deal listings. Zero means "amount".
	Sort string
}
