// Package messages holds the user-facing texts of the bot.
package messages

import (
	_ "embed"
	"fmt"

	"handin/model"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalog []byte

// Catalog is the set of texts sent to submitters and the reviewer. Entries
// ending in a format verb are filled with fmt.Sprintf.
type Catalog struct {
	Welcome      string            `yaml:"welcome"`
	Menu         Menu              `yaml:"menu"`
	Requirements string            `yaml:"requirements"`
	Help         string            `yaml:"help"`
	Steps        map[string]string `yaml:"steps"`

	AdvanceButton      string `yaml:"advance_button"`
	SourceReceived     string `yaml:"source_received"`
	PhotosetProgress   string `yaml:"photoset_progress"`
	PhotosetFull       string `yaml:"photoset_full"`
	StickerProgress    string `yaml:"sticker_progress"`
	StickersDone       string `yaml:"stickers_done"`
	StickersFull       string `yaml:"stickers_full"`
	ArchiveReceived    string `yaml:"archive_received"`
	ExpectingMedia     string `yaml:"expecting_media"`
	ExpectingText      string `yaml:"expecting_text"`
	UnknownStep        string `yaml:"unknown_step"`
	Completed          string `yaml:"completed"`
	ReviewUnconfigured string `yaml:"review_unconfigured"`

	Summary Summary `yaml:"summary"`
	Review  Review  `yaml:"review"`
	IDs     IDs     `yaml:"ids"`
}

type Menu struct {
	Submit       string `yaml:"submit"`
	Requirements string `yaml:"requirements"`
	Help         string `yaml:"help"`
}

type Summary struct {
	Title   string `yaml:"title"`
	Name    string `yaml:"name"`
	Handle  string `yaml:"handle"`
	Prompt  string `yaml:"prompt"`
	Hardest string `yaml:"hardest"`
	Review  string `yaml:"review"`
}

type Review struct {
	AcceptButton  string `yaml:"accept_button"`
	ReworkButton  string `yaml:"rework_button"`
	CertifyButton string `yaml:"certify_button"`
	Accepted      string `yaml:"accepted"`
	AcceptedAck   string `yaml:"accepted_ack"`
	Certified     string `yaml:"certified"`
	CertifiedAck  string `yaml:"certified_ack"`
	ReworkPrompt  string `yaml:"rework_prompt"`
	Rework        string `yaml:"rework"`
	ReworkAck     string `yaml:"rework_ack"`
	NoAccess      string `yaml:"no_access"`
}

type IDs struct {
	User string `yaml:"user"`
	Chat string `yaml:"chat"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("messages: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a catalog and checks that every step has a prompt.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for s := model.StepAwaitingName; s <= model.StepAwaitingReview; s++ {
		if c.Steps[s.String()] == "" {
			return nil, fmt.Errorf("catalog has no prompt for step %s", s)
		}
	}
	return &c, nil
}

// StepPrompt returns the instruction shown when a user reaches step s.
func (c *Catalog) StepPrompt(s model.Step) string {
	if p, ok := c.Steps[s.String()]; ok {
		return p
	}
	return c.UnknownStep
}
