package ny511

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"nyc-route-optimizer/internal/domain"
	"strconv"
	"strings"
)

type event struct {
	RoadwayName         string `json:"roadwayName"`
	HeadlineDescription string `json:"headlineDescription"`
	Severity            string `json:"severity"`
	StartTime           string `json:"starttime"`
	EndTime             string `json:"endtime"`
	Latitude            coord  `json:"latitude"`
	Longitude           coord  `json:"longitude"`
}

type eventsEnvelope struct {
	Events []event `json:"events"`
	feedMessage
}

// coord accepts a JSON number or numeric string. Anything else leaves it invalid.
type coord struct {
	v     float64
	valid bool
}

func (c *coord) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = coord{}
		return nil
	}
	*c = coord{v: v, valid: true}
	return nil
}

// decodeEvents accepts either a bare list or an object with an "events" list.
func decodeEvents(r io.Reader) ([]event, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read events body: %w", err)
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}

	if b[0] == '[' {
		var list []event
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, fmt.Errorf("decode events list: %w", err)
		}
		return list, nil
	}

	var env eventsEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode events object: %w", err)
	}
	if env.Events == nil && env.text() != "" {
		return nil, &feedError{Status: http.StatusOK, Message: env.text()}
	}
	return env.Events, nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func (e event) toDomain() domain.TrafficEvent {
	out := domain.TrafficEvent{
		Road:        orDefault(e.RoadwayName, "Unknown Road"),
		Description: orDefault(e.HeadlineDescription, "No description"),
		Severity:    orDefault(e.Severity, "Unknown"),
		StartTime:   orDefault(e.StartTime, "N/A"),
		EndTime:     orDefault(e.EndTime, "N/A"),
	}

	if e.Latitude.valid && e.Longitude.valid && (e.Latitude.v != 0 || e.Longitude.v != 0) {
		out.Location = &domain.Coordinates{Lat: e.Latitude.v, Lng: e.Longitude.v}
	}
	return out
}
