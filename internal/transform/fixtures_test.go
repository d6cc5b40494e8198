package transform

import (
	"time"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
	"projimport/internal/mapping"
)

var (
	created = time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)
	updated = time.Date(2023, 3, 2, 17, 30, 0, 0, time.UTC)
	now     = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return now }

func newProvider() mapping.MapProvider {
	return mapping.MapProvider{
		entity.KindProject:           {"10000": "20000"},
		entity.KindIssueType:         {"1": "11"},
		entity.KindStatus:            {"3": "33"},
		entity.KindPriority:          {"2": "22"},
		entity.KindResolution:        {"5": "55", "6": ""},
		entity.KindSecurityLevel:     {"10020": "20020"},
		entity.KindUser:              {"fred": "fred.smith", "barney": "barney.rubble"},
		entity.KindIssue:             {"10100": "20100", "10101": "20101"},
		entity.KindProjectRole:       {"10002": "20002"},
		entity.KindChangeGroup:       {"10300": "20300"},
		entity.KindIssueLinkType:     {"10200": "20200"},
		entity.KindComponent:         {"10500": "20500"},
		entity.KindVersion:           {"10600": "20600"},
		entity.KindCustomField:       {"10400": "20400", "10401": "20401", "10402": "20402"},
		entity.KindCustomFieldOption: {"10010": "20010"},
	}
}

func newSink() *diagnostic.Diagnostics {
	return &diagnostic.Diagnostics{}
}
