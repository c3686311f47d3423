package rewrite

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

func TestSystemPrompt(t *testing.T) {
	now := time.Date(2025, 6, 16, 17, 10, 0, 0, time.UTC)
	prompt := systemPrompt(now)

	if !strings.Contains(prompt, "2025-06-16 17:10") {
		t.Error("prompt must carry the current time")
	}
	for _, cat := range models.Categories() {
		if !strings.Contains(prompt, string(cat)) {
			t.Errorf("prompt must list category %s", cat)
		}
	}
}

func TestNoteJSON(t *testing.T) {
	created := time.Date(2025, 6, 16, 17, 10, 0, 0, time.UTC)
	n := models.Note{
		Text:      "buy milk",
		Category:  models.CategoryShopping,
		CreatedAt: created,
		Triggers: []models.Trigger{
			{Kind: models.TriggerTime, Value: "2025-06-16 18:00"},
		},
	}

	data, err := json.Marshal(noteJSON(n))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got struct {
		Text         string  `json:"text"`
		CreatedAt    string  `json:"createdAt"`
		UpdatedAt    *string `json:"updatedAt"`
		CategoryType string  `json:"categoryType"`
		Triggers     []struct {
			TriggerType  string `json:"triggerType"`
			TriggerValue string `json:"triggerValue"`
		} `json:"triggers"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Text != "buy milk" || got.CategoryType != "Shopping" {
		t.Errorf("payload = %s", data)
	}
	if got.CreatedAt != "2025-06-16 17:10" {
		t.Errorf("createdAt = %q", got.CreatedAt)
	}
	if got.UpdatedAt != nil {
		t.Errorf("updatedAt = %v, want null", *got.UpdatedAt)
	}
	if len(got.Triggers) != 1 || got.Triggers[0].TriggerValue != "2025-06-16 18:00" {
		t.Errorf("triggers = %+v", got.Triggers)
	}
}
