package board

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/n2code/favcurator/internal/asset"
)

type jsonPage struct {
	Id    string
	Name  string `json:",omitempty"`
	Items []string
}

type jsonBoard struct {
	Pages []jsonPage
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	persisted := jsonBoard{Pages: make([]jsonPage, 0, len(c.pages))}
	for _, page := range c.pages {
		items := make([]string, 0, len(page.items))
		for _, ref := range page.items {
			items = append(items, string(ref))
		}
		persisted.Pages = append(persisted.Pages, jsonPage{Id: page.id.String(), Name: page.name, Items: items})
	}
	return json.Marshal(persisted)
}

func (c *Collection) UnmarshalJSON(blob []byte) error {
	var loaded jsonBoard
	decoder := json.NewDecoder(bytes.NewReader(blob))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&loaded); err != nil {
		return err
	}
	pages := make([]Page, 0, len(loaded.Pages))
	for position, persisted := range loaded.Pages {
		id, err := uuid.Parse(persisted.Id)
		if err != nil {
			return fmt.Errorf("page %d has bad ID: %w", position+1, err)
		}
		items := make([]asset.Ref, 0, len(persisted.Items))
		for _, item := range persisted.Items {
			ref, err := asset.FromAnchored(item)
			if err != nil {
				return fmt.Errorf("page %d: %w", position+1, err)
			}
			items = append(items, ref)
		}
		pages = append(pages, RestorePage(id, persisted.Name, items))
	}
	*c = *NewCollection(pages...)
	return nil
}
