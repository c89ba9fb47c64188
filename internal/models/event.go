package models

import "time"

// Event represents one calendar or community event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	College     string    `json:"college"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Likes       int64     `json:"likes"`
	Date        time.Time `json:"date"`
	LikedBy     []string  `json:"likedBy"`
}

// EventFromDocument builds an Event from a stored document. id is the
// document's store-assigned key; an "id" field in data is ignored.
// Absent or mistyped fields take their zero value, and LikedBy is never nil.
func EventFromDocument(id string, data map[string]interface{}) Event {
	return Event{
		ID:          id,
		Title:       stringField(data, "title"),
		College:     stringField(data, "college"),
		Category:    stringField(data, "category"),
		Description: stringField(data, "description"),
		Likes:       intField(data, "likes"),
		Date:        timeField(data, "date"),
		LikedBy:     stringsField(data, "likedBy"),
	}
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func intField(data map[string]interface{}, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	}
	return 0
}

func timeField(data map[string]interface{}, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func stringsField(data map[string]interface{}, key string) []string {
	out := []string{}
	switch v := data[key].(type) {
	case []string:
		out = append(out, v...)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
