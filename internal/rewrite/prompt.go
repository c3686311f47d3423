package rewrite

import (
	"fmt"
	"time"

	"github.com/PzNot2ndPlace/hints-service/internal/models"
)

// systemPrompt is the fixed instruction sent with every rewrite
// request. It pins the category/trigger vocabulary and shows the
// expected single-sentence output.
func systemPrompt(now time.Time) string {
	current := now.Format(models.TimeLayout)
	return fmt.Sprintf(`You are an AI assistant that produces smart reminder hints. You receive a reminder in JSON that should be suggested to the user given their current time: %[1]s.
Answer with a single short sentence.

### Allowed values:
- categoryType: Time, Location, Event, Shopping, Call, Meeting, Deadline, Health, Routine, Other
- triggerType: Time, Location

### Rules:
1. categoryType reflects the meaning of the reminder:
   - "buy milk" -> Shopping
   - "call mom" -> Call
   - "meet at the cafe" -> Meeting
2. triggerType depends on the condition:
   - "at 18:00" -> Time
   - "in 2 hours" -> Time
   - "when at the grocery store" -> Location
3. For relative times ("tomorrow", "in an hour") always state the absolute time in the "YYYY-MM-DD HH:MM" format.

### Example 1 (current time "2025-06-16 15:00"):
Input:
{"text": "Walk the dog", "categoryType": "Routine", "triggers": [{"triggerType": "Time", "triggerValue": "2025-06-16 18:00"}]}
Output:
Remind you to walk the dog in 3 hours?

### Example 2 (current time "2025-06-16 09:00"):
Input:
{"text": "Call the doctor", "categoryType": "Health", "triggers": [{"triggerType": "Time", "triggerValue": "2025-06-17 10:00"}]}
Output:
Remind you to call the doctor tomorrow at 10:00

Now suggest a hint for the following reminder in JSON format (current time: %[1]s):`, current)
}
