// Package leads forwards quiz submissions to a Notion database so they can be
// followed up outside the service.
package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"aerogap-backend/internal/quiz"
)

// PageCreator is the Notion API surface used to record leads.
type PageCreator interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

type notionClient struct {
	inner   *notionapi.Client
	limiter *rate.Limiter
}

// NewNotionClient wraps a notionapi client. Calls are throttled to rps
// requests per second; Notion allows an average of 3.
func NewNotionClient(token string, rps float64) PageCreator {
	c := &notionClient{inner: notionapi.NewClient(notionapi.Token(token))}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
	return c
}

func (c *notionClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "notion: rate limit")
		}
	}
	page, err := c.inner.Page.Create(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "notion: create page")
	}
	return page, nil
}

// NotionSink implements quiz.LeadSink by creating one database page per
// submission.
type NotionSink struct {
	Client     PageCreator
	DatabaseID string
}

// PushLead implements quiz.LeadSink.
func (s *NotionSink) PushLead(ctx context.Context, sub quiz.Submission, flags []quiz.FlaggedArea) error {
	if s == nil || s.Client == nil || s.DatabaseID == "" {
		return nil
	}
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.DatabaseID),
		},
		Properties: LeadProperties(sub, flags),
	}
	if _, err := s.Client.CreatePage(ctx, req); err != nil {
		return eris.Wrap(err, fmt.Sprintf("leads: push submission %s", sub.ID))
	}
	return nil
}

// LeadProperties maps a submission onto the lead database columns.
func LeadProperties(sub quiz.Submission, flags []quiz.FlaggedArea) notionapi.Properties {
	submitted := notionapi.Date(sub.CreatedAt)
	props := notionapi.Properties{
		"Company": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(sub.CompanyName),
		},
		"Contact": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(sub.ContactName),
		},
		"Email": notionapi.EmailProperty{
			Type:  notionapi.PropertyTypeEmail,
			Email: sub.Email,
		},
		"Consent": notionapi.CheckboxProperty{
			Type:     notionapi.PropertyTypeCheckbox,
			Checkbox: sub.ConsentToContact,
		},
		"Submission ID": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(sub.ID),
		},
		"Submitted": notionapi.DateProperty{
			Type: notionapi.PropertyTypeDate,
			Date: &notionapi.DateObject{Start: &submitted},
		},
	}
	if sub.Phone != "" {
		props["Phone"] = notionapi.PhoneNumberProperty{
			Type:        notionapi.PropertyTypePhoneNumber,
			PhoneNumber: sub.Phone,
		}
	}

	opts := make([]notionapi.Option, 0, len(flags))
	lines := make([]string, 0, len(flags))
	for _, f := range flags {
		opts = append(opts, notionapi.Option{Name: f.Label})
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", f.Severity, f.Label, f.Description))
	}
	props["Flagged Areas"] = notionapi.MultiSelectProperty{
		Type:        notionapi.PropertyTypeMultiSelect,
		MultiSelect: opts,
	}
	if len(lines) > 0 {
		props["Findings"] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(truncate(strings.Join(lines, "\n"), maxRichText)),
		}
	}
	return props
}

// Notion rejects rich text blocks longer than this.
const maxRichText = 2000

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
