// Package freshsales provides the typed surface over the Freshworks CRM
// sales API: contact and deal listings by view, single-record lookups, and
// full-listing aggregation with client-side deal enrichment.
package freshsales

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solvline/freshworks-crm-client/pkg/client"
	"github.com/solvline/freshworks-crm-client/pkg/enrich"
	"github.com/solvline/freshworks-crm-client/pkg/pagination"
)

// Service exposes the contact and deal operations of the sales API.
type Service struct {
	client         *client.Client
	contactsViewID string
	dealsViewID    string
	logger         zerolog.Logger
}

// Config holds the service configuration.
type Config struct {
	// ContactsViewID selects the contacts listing view.
	// Empty means DefaultContactsViewID.
	ContactsViewID string

	// DealsViewID selects the deals listing view.
	// Empty means DefaultDealsViewID.
	DealsViewID string
}

// NewService creates a service on top of an existing CRM client.
func NewService(c *client.Client, cfg Config) *Service {
	if cfg.ContactsViewID == "" {
		cfg.ContactsViewID = DefaultContactsViewID
	}
	if cfg.DealsViewID == "" {
		cfg.DealsViewID = DefaultDealsViewID
	}

	return &Service{
		client:         c,
		contactsViewID: cfg.ContactsViewID,
		dealsViewID:    cfg.DealsViewID,
		logger:         log.With().Str("component", "freshsales").Logger(),
	}
}

// ListContacts fetches one page of the contacts listing view.
func (s *Service) ListContacts(ctx context.Context, opts ListOptions) (*ListPage, error) {
	viewID := opts.ViewID
	if viewID == "" {
		viewID = s.contactsViewID
	}

	params := listParams(opts)
	if opts.Include != "" {
		params.Set("include", opts.Include)
	}

	var page ListPage
	if err := s.client.GetJSON(ctx, "contacts/view/"+viewID, params, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ListDeals fetches one page of the deals listing view, sorted by amount,
// and enriches each deal with its owner record and stage name using the
// user records returned alongside that page.
func (s *Service) ListDeals(ctx context.Context, opts ListOptions) (*ListPage, error) {
	viewID := opts.ViewID
	if viewID == "" {
		viewID = s.dealsViewID
	}

	params := listParams(opts)
	sort := opts.Sort
	if sort == "" {
		sort = "amount"
	}
	params.Set("sort", sort)

	include := opts.Include
	if include == "" {
		include = "owner"
	}
	params.Set("include", include)

	var page ListPage
	if err := s.client.GetJSON(ctx, "deals/view/"+viewID, params, &page); err != nil {
		return nil, err
	}

	enrich.Deals(page.Deals, page.Users)

	return &page, nil
}

// GetContact fetches a single contact by id. An empty include defaults to
// "owner".
func (s *Service) GetContact(ctx context.Context, contactID int64, include string) (Record, error) {
	if include == "" {
		include = "owner"
	}

	params := url.Values{}
	params.Set("include", include)

	var result Record
	if err := s.client.GetJSON(ctx, fmt.Sprintf("contacts/%d", contactID), params, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// GetDeal fetches a single deal by id. An empty include defaults to
// "owner,contact".
func (s *Service) GetDeal(ctx context.Context, dealID int64, include string) (Record, error) {
	if include == "" {
		include = "owner,contact"
	}

	params := url.Values{}
	params.Set("include", include)

	var result Record
	if err := s.client.GetJSON(ctx, fmt.Sprintf("deals/%d", dealID), params, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// AllContacts walks the contacts listing view across pages and returns all
// contacts in fetch order. Collection stops at maxPages; pass
// DefaultMaxPages for the usual bound. Fetch errors reach the caller
// unchanged.
func (s *Service) AllContacts(ctx context.Context, maxPages int) ([]Record, error) {
	fetch := func(ctx context.Context, pageNum int) (*pagination.Page, error) {
		page, err := s.ListContacts(ctx, ListOptions{Page: pageNum, PerPage: AggregatePerPage})
		if err != nil {
			return nil, err
		}
		return &pagination.Page{Items: page.Contacts, Meta: page.Meta}, nil
	}

	contacts, err := pagination.Collect(ctx, fetch, maxPages)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("contacts", len(contacts)).Msg("Contact collection complete")
	return contacts, nil
}

// AllDeals walks the deals listing view across pages and returns all deals
// in fetch order, each enriched with its owner and stage name from the page
// it arrived on.
func (s *Service) AllDeals(ctx context.Context, maxPages int) ([]Record, error) {
	fetch := func(ctx context.Context, pageNum int) (*pagination.Page, error) {
		page, err := s.ListDeals(ctx, ListOptions{Page: pageNum, PerPage: AggregatePerPage})
		if err != nil {
			return nil, err
		}
		return &pagination.Page{Items: page.Deals, Meta: page.Meta}, nil
	}

	deals, err := pagination.Collect(ctx, fetch, maxPages)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("deals", len(deals)).Msg("Deal collection complete")
	return deals, nil
}

// listParams builds the shared page/per_page query parameters.
func listParams(opts ListOptions) url.Values {
	pageNum := opts.Page
	if pageNum <= 0 {
		pageNum = 1
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(pageNum))
	params.Set("per_page", strconv.Itoa(perPage))
	return params
}
