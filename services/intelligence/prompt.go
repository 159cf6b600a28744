package ai

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const schemaSection = `You are a world-class scheduling assistant. Convert the user's request into this JSON format:

{
  "intent": "book" | "check_availability" | "confirm" | "clarify",
  "start_time": "YYYY-MM-DD HH:MM:SS" | null,
  "end_time": "YYYY-MM-DD HH:MM:SS" | null,
  "duration_minutes": integer | null,
  "summary": string | null,
  "reply": string | null
}

IMPORTANT RULES:
1. If a request is ambiguous about which specific date (like "Monday July" or "next week"), use "clarify" intent
2. Only use "book" intent when the date and time are completely clear
3. For availability checks, use "check_availability" intent
4. For confirmations like "yes", "ok", "sure", use "confirm" intent
5. For an exact time set end_time equal to start_time; for a range set both ends of the range

Definitions:
- "morning": 09:00-12:00
- "noon": 12:00-13:00
- "afternoon": 13:00-17:00
- "post-lunch": 13:00-15:00
- "evening": 17:00-21:00
- "night": 21:00-23:59
- "weekend": Saturday and Sunday
`

// promptExample is one worked request and the intent it should produce.
type promptExample struct {
	text     string
	intent   string
	start    string
	end      string
	duration int
	summary  string
	reply    string
}

// BuildPrompt renders the extraction prompt for text with examples anchored on now.
func BuildPrompt(text string, now time.Time) string {
	var builder strings.Builder

	builder.WriteString(schemaSection)
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Current date: %s\n", now.Format("Monday, January 02, 2006")))
	builder.WriteString(fmt.Sprintf("Current time: %s\n\n", now.Format("15:04")))

	builder.WriteString("Examples:\n\n")
	for _, ex := range examples(now) {
		builder.WriteString(fmt.Sprintf("User: %q\n", ex.text))
		builder.WriteString(renderExample(ex))
		builder.WriteString("\n\n")
	}

	builder.WriteString(fmt.Sprintf("User: %q\n\n", text))
	builder.WriteString("Respond ONLY with the JSON object. No other text.\n")
	return builder.String()
}

func examples(now time.Time) []promptExample {
	today := now.Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	monday := nextWeekday(now, time.Monday).Format(dateLayout)

	return []promptExample{
		{text: "book for 5pm today", intent: "book", start: today + " 17:00:00", end: today + " 17:00:00",
			duration: 60, summary: "Meeting", reply: "Booking for today at 5pm."},
		{text: "book for Monday " + now.Format("January"), intent: "clarify", summary: "Meeting",
			reply: "There are several Mondays in " + now.Format("January 2006") + ". Which specific Monday would you like to book?"},
		{text: "book for next Monday at 3pm", intent: "book", start: monday + " 15:00:00", end: monday + " 15:00:00",
			duration: 60, summary: "Meeting", reply: "Booking for next Monday at 3pm."},
		{text: "any free time tomorrow afternoon?", intent: "check_availability", start: tomorrow + " 13:00:00", end: tomorrow + " 17:00:00",
			duration: 60, reply: "Checking availability tomorrow afternoon."},
		{text: "schedule something next week", intent: "clarify", summary: "Meeting",
			reply: "I'd be happy to schedule something next week! Could you specify which day and time you prefer?"},
		{text: "yes", intent: "confirm", reply: "Confirming your booking."},
		{text: "30 minute call tomorrow at 10am", intent: "book", start: tomorrow + " 10:00:00", end: tomorrow + " 10:00:00",
			duration: 30, summary: "Call", reply: "Booking 30-minute call tomorrow at 10am."},
	}
}

func renderExample(ex promptExample) string {
	var builder strings.Builder
	builder.WriteString("{\n")
	builder.WriteString(fmt.Sprintf("  \"intent\": %q,\n", ex.intent))
	builder.WriteString(fmt.Sprintf("  \"start_time\": %s,\n", jsonStringOrNull(ex.start)))
	builder.WriteString(fmt.Sprintf("  \"end_time\": %s,\n", jsonStringOrNull(ex.end)))
	if ex.duration > 0 {
		builder.WriteString(fmt.Sprintf("  \"duration_minutes\": %d,\n", ex.duration))
	} else {
		builder.WriteString("  \"duration_minutes\": null,\n")
	}
	builder.WriteString(fmt.Sprintf("  \"summary\": %s,\n", jsonStringOrNull(ex.summary)))
	builder.WriteString(fmt.Sprintf("  \"reply\": %s\n", jsonStringOrNull(ex.reply)))
	builder.WriteString("}")
	return builder.String()
}

func jsonStringOrNull(s string) string {
	if s == "" {
		return "null"
	}
	return fmt.Sprintf("%q", s)
}

// nextWeekday returns the next given weekday strictly after now's date.
func nextWeekday(now time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(now.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return now.AddDate(0, 0, delta)
}
