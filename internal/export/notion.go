package export

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/scholarhub/scholarship-crawler/internal/model"
	"github.com/scholarhub/scholarship-crawler/pkg/notion"
)

// NotionAdapter upserts scholarship records into a Notion database,
// keyed on the Item ID property. Records whose fingerprint already has
// a page are updated in place instead of duplicated.
type NotionAdapter struct {
	client notion.Client
	dbID   string
}

// NewNotion creates a Notion export adapter. A nil client or empty
// database ID disables the adapter at Open.
func NewNotion(client notion.Client, dbID string) *NotionAdapter {
	return &NotionAdapter{client: client, dbID: dbID}
}

func (a *NotionAdapter) Name() string { return "notion" }

func (a *NotionAdapter) Open(_ context.Context) (bool, error) {
	return a.client != nil && a.dbID != "", nil
}

func (a *NotionAdapter) Export(ctx context.Context, r *model.Record) error {
	pageID, err := notion.FindByItemID(ctx, a.client, a.dbID, r.ItemID)
	if err != nil {
		return eris.Wrap(err, "export: look up existing page")
	}

	props := a.properties(r)
	if pageID != "" {
		_, err = a.client.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
			Properties: props,
		})
		if err != nil {
			return eris.Wrap(err, "export: update page")
		}
		return nil
	}

	_, err = a.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(a.dbID),
		},
		Properties: props,
	})
	if err != nil {
		return eris.Wrap(err, "export: create page")
	}
	return nil
}

func (a *NotionAdapter) Close(_ context.Context) error { return nil }

func (a *NotionAdapter) properties(r *model.Record) notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: richText(r.Title),
		},
		"Item ID":     notionapi.RichTextProperty{RichText: richText(r.ItemID)},
		"Description": notionapi.RichTextProperty{RichText: richText(truncate(r.Description, 2000))},
		"Amount":      notionapi.RichTextProperty{RichText: richText(r.Amount)},
		"Deadline":    notionapi.RichTextProperty{RichText: richText(r.Deadline)},
		"Provider":    notionapi.RichTextProperty{RichText: richText(r.Provider)},
		"Eligibility": notionapi.RichTextProperty{RichText: richText(truncate(r.Eligibility, 2000))},
		"Source": notionapi.SelectProperty{
			Select: notionapi.Option{Name: r.Source},
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{Name: r.Category},
		},
		"Active": notionapi.CheckboxProperty{Checkbox: r.IsActive},
	}
	if r.ApplicationURL != "" {
		props["Application URL"] = notionapi.URLProperty{URL: r.ApplicationURL}
	}
	if len(r.Tags) > 0 {
		opts := make([]notionapi.Option, 0, len(r.Tags))
		for _, t := range r.Tags {
			opts = append(opts, notionapi.Option{Name: t})
		}
		props["Tags"] = notionapi.MultiSelectProperty{MultiSelect: opts}
	}
	if !r.ScrapedDate.IsZero() {
		d := notionapi.Date(r.ScrapedDate)
		props["Scraped"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &d},
		}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

// truncate keeps strings under Notion's per-rich-text content cap.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
