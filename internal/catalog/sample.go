package catalog

import "github.com/stammy5/ampere-docproc/internal/entity"

// SampleEntries returns the built-in demonstration rate book used when no
// persisted file exists. Ten entries spanning demolition, finishes,
// electrical, plumbing and carpentry.
func SampleEntries() []entity.RateEntry {
	return []entity.RateEntry{
		{Item: "Demolition of brick wall", Unit: "m2", Rate: "25.00", Category: "Demolition"},
		{Item: "Plastering walls", Unit: "m2", Rate: "18.50", Category: "Finishes"},
		{Item: "Laying ceramic tiles", Unit: "m2", Rate: "32.00", Category: "Finishes"},
		{Item: "Installing ceiling boards", Unit: "m2", Rate: "22.00", Category: "Finishes"},
		{Item: "Electrical wiring", Unit: "m", Rate: "8.50", Category: "Electrical"},
		{Item: "Plumbing pipes installation", Unit: "m", Rate: "15.00", Category: "Plumbing"},
		{Item: "Painting walls", Unit: "m2", Rate: "12.00", Category: "Finishes"},
		{Item: "Floor screeding", Unit: "m2", Rate: "20.00", Category: "Finishes"},
		{Item: "Installing kitchen cabinets", Unit: "set", Rate: "850.00", Category: "Carpentry"},
		{Item: "Door installation", Unit: "no", Rate: "180.00", Category: "Carpentry"},
	}
}
