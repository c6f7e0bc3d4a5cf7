package list_bookings

import "net/url"

// queryParams параметры списка, которые передаются в цепочку валидации
var queryParams = []string{
	"page",
	"limit",
	"status",
	"from",
	"to",
	"sortBy",
	"sortOrder",
	"customerId",
	"specialistId",
}

// queryPayload переводит query string в payload; повторяющийся status становится списком
func queryPayload(values url.Values) map[string]any {
	payload := make(map[string]any, len(queryParams))
	for _, name := range queryParams {
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if name == "status" && len(vals) > 1 {
			payload[name] = vals
			continue
		}
		payload[name] = vals[0]
	}
	return payload
}
