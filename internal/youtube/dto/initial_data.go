// Package dto holds the subset of YouTube's ytInitialData search payload
// that the page searcher reads.
package dto

import (
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// InitialData is the root of the results page payload.
type InitialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []SectionContent `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

// SectionContent is one section of the results list. Only item sections
// carry results; continuation sections are ignored.
type SectionContent struct {
	ItemSectionRenderer *ItemSection `json:"itemSectionRenderer"`
}

// ItemSection holds result items in ranking order.
type ItemSection struct {
	Contents []Item `json:"contents"`
}

// Item is a single result. At most one renderer is set; shelves, ads and
// channel cards leave both nil.
type Item struct {
	VideoRenderer    *VideoRenderer    `json:"videoRenderer"`
	PlaylistRenderer *PlaylistRenderer `json:"playlistRenderer"`
}

// VideoRenderer describes a video result.
type VideoRenderer struct {
	VideoID            string   `json:"videoId"`
	Title              Text     `json:"title"`
	LengthText         Text     `json:"lengthText"`
	NavigationEndpoint Endpoint `json:"navigationEndpoint"`
}

// PlaylistRenderer describes a playlist or mix result.
type PlaylistRenderer struct {
	PlaylistID         string   `json:"playlistId"`
	Title              Text     `json:"title"`
	NavigationEndpoint Endpoint `json:"navigationEndpoint"`
}

// Text is YouTube's formatted string: either simpleText or a list of runs.
type Text struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// String flattens the text.
func (t Text) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Endpoint carries the relative URL a result links to.
type Endpoint struct {
	CommandMetadata struct {
		WebCommandMetadata struct {
			URL string `json:"url"`
		} `json:"webCommandMetadata"`
	} `json:"commandMetadata"`
}

// URL returns the relative link, empty if absent.
func (e Endpoint) URL() string {
	return e.CommandMetadata.WebCommandMetadata.URL
}

// Items returns every result item across item sections, in order.
func (d *InitialData) Items() []Item {
	var items []Item
	for _, section := range d.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		if section.ItemSectionRenderer == nil {
			continue
		}
		items = append(items, section.ItemSectionRenderer.Contents...)
	}
	return items
}

// ToCandidate converts an item to a model.Candidate. The second return
// value is false for items that are neither videos nor playlists.
func (i Item) ToCandidate() (model.Candidate, bool) {
	switch {
	case i.VideoRenderer != nil:
		v := i.VideoRenderer
		return model.Candidate{
			Link:     v.NavigationEndpoint.URL(),
			Title:    v.Title.String(),
			Duration: v.LengthText.String(),
		}, true
	case i.PlaylistRenderer != nil:
		p := i.PlaylistRenderer
		return model.Candidate{
			Link:  p.NavigationEndpoint.URL(),
			Title: p.Title.String(),
		}, true
	default:
		return model.Candidate{}, false
	}
}
