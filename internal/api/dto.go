package api

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
	"github.com/PzNot2ndPlace/hints-service/internal/pattern"
)

// The wire shapes below follow the original hint API: camelCase note
// fields, snake_case envelope fields, timestamps in models.TimeLayout.

// TriggerDTO is a note trigger on the wire.
type TriggerDTO struct {
	TriggerType  string `json:"triggerType"`
	TriggerValue string `json:"triggerValue"`
}

// Validate checks the trigger kind against the closed enum. Time
// values are not format-checked here: malformed time triggers are
// tolerated by the engine, which skips them during temporal analysis.
func (t TriggerDTO) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.TriggerType, validation.Required,
			validation.In(string(models.TriggerTime), string(models.TriggerLocation))),
		validation.Field(&t.TriggerValue, validation.Required),
	)
}

// NoteDTO is a note on the wire.
type NoteDTO struct {
	Text         string       `json:"text"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    *string      `json:"updatedAt"`
	CategoryType string       `json:"categoryType"`
	Triggers     []TriggerDTO `json:"triggers"`
}

// Validate checks field presence, timestamp layout, and enum
// membership.
func (n NoteDTO) Validate() error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.Text, validation.Required),
		validation.Field(&n.CreatedAt, validation.Required, validation.Date(models.TimeLayout)),
		validation.Field(&n.UpdatedAt, validation.Date(models.TimeLayout)),
		validation.Field(&n.CategoryType, validation.Required, validation.In(categoryValues()...)),
	)
	if err != nil {
		return err
	}
	for i, tr := range n.Triggers {
		if err := tr.Validate(); err != nil {
			return fmt.Errorf("triggers[%d]: %w", i, err)
		}
	}
	return nil
}

// ToNote converts a validated DTO to the domain type.
func (n NoteDTO) ToNote() (models.Note, error) {
	createdAt, err := time.Parse(models.TimeLayout, n.CreatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("createdAt: %w", err)
	}
	var updatedAt *time.Time
	if n.UpdatedAt != nil && *n.UpdatedAt != "" {
		ts, err := time.Parse(models.TimeLayout, *n.UpdatedAt)
		if err != nil {
			return models.Note{}, fmt.Errorf("updatedAt: %w", err)
		}
		updatedAt = &ts
	}
	triggers := make([]models.Trigger, len(n.Triggers))
	for i, tr := range n.Triggers {
		triggers[i] = models.Trigger{Kind: models.TriggerKind(tr.TriggerType), Value: tr.TriggerValue}
	}
	return models.Note{
		Text:      n.Text,
		Category:  models.Category(n.CategoryType),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Triggers:  triggers,
	}, nil
}

// NoteToDTO renders a domain note in the wire shape.
func NoteToDTO(n models.Note) NoteDTO {
	var updatedAt *string
	if n.UpdatedAt != nil {
		s := n.UpdatedAt.Format(models.TimeLayout)
		updatedAt = &s
	}
	triggers := make([]TriggerDTO, len(n.Triggers))
	for i, tr := range n.Triggers {
		triggers[i] = TriggerDTO{TriggerType: string(tr.Kind), TriggerValue: tr.Value}
	}
	return NoteDTO{
		Text:         n.Text,
		CreatedAt:    n.CreatedAt.Format(models.TimeLayout),
		UpdatedAt:    updatedAt,
		CategoryType: string(n.Category),
		Triggers:     triggers,
	}
}

// HintRequest is the inbound body of POST /hints/text-based.
type HintRequest struct {
	Context     []NoteDTO `json:"context"`
	CurrentTime string    `json:"current_time"`
}

// Validate checks the envelope and every note in it.
func (r HintRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.CurrentTime, validation.Required, validation.Date(models.TimeLayout)),
	)
	if err != nil {
		return err
	}
	return validateNotes(r.Context)
}

// ToNotes converts the validated history to domain notes.
func (r HintRequest) ToNotes() ([]models.Note, error) {
	return dtosToNotes(r.Context)
}

// Time parses the validated current-time value.
func (r HintRequest) Time() (time.Time, error) {
	return time.Parse(models.TimeLayout, r.CurrentTime)
}

// SignaturesRequest is the inbound body of POST /hints/signatures.
type SignaturesRequest struct {
	Context []NoteDTO `json:"context"`
}

// Validate checks every note in the history.
func (r SignaturesRequest) Validate() error {
	return validateNotes(r.Context)
}

// ToNotes converts the validated history to domain notes.
func (r SignaturesRequest) ToNotes() ([]models.Note, error) {
	return dtosToNotes(r.Context)
}

// HintResponse is the successful recommendation payload.
type HintResponse struct {
	Note     NoteDTO `json:"note"`
	HintText string  `json:"hint_text"`
}

// CategorySignatureDTO is one row of the signatures response.
type CategorySignatureDTO struct {
	CategoryType   string `json:"categoryType"`
	TriggerCount   int    `json:"trigger_count"`
	AvgTriggerTime string `json:"avg_trigger_time"`
}

// SignaturesResponse wraps the per-category temporal signatures, in
// canonical category order.
type SignaturesResponse struct {
	Signatures []CategorySignatureDTO `json:"signatures"`
}

func signaturesToDTO(sigs map[models.Category]pattern.CategorySignature) []CategorySignatureDTO {
	out := []CategorySignatureDTO{}
	for _, cat := range models.Categories() {
		sig, ok := sigs[cat]
		if !ok {
			continue
		}
		out = append(out, CategorySignatureDTO{
			CategoryType:   string(cat),
			TriggerCount:   sig.TriggerCount,
			AvgTriggerTime: sig.AvgTrigger.String(),
		})
	}
	return out
}

func validateNotes(notes []NoteDTO) error {
	for i, n := range notes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("context[%d]: %w", i, err)
		}
	}
	return nil
}

func dtosToNotes(dtos []NoteDTO) ([]models.Note, error) {
	notes := make([]models.Note, len(dtos))
	for i, d := range dtos {
		n, err := d.ToNote()
		if err != nil {
			return nil, fmt.Errorf("context[%d]: %w", i, err)
		}
		notes[i] = n
	}
	return notes, nil
}

func categoryValues() []interface{} {
	cats := models.Categories()
	out := make([]interface{}, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}
