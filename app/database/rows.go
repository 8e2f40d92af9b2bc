package database

import "strconv"

// Helpers for reading executor row maps. SQLite hands integers back as int64
// and text as string, but values that crossed a JSON boundary or an
// expression may arrive differently, so these normalize.

func rowString(row map[string]any, col string) string {
	switch v := row[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

func rowInt64(row map[string]any, col string) int64 {
	switch v := row[col].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}
