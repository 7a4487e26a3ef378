package actionitems

// Bucket names technical sub-domains that action items are grouped into.
// Other is the catch-all for notes matching no keyword set.
const Other = "Other"

// bucketRule binds a bucket name to the keywords that route a note into it.
// Matching is case-insensitive substring search against the note text.
type bucketRule struct {
	Name     string
	Keywords []string
}

// bucketRules is the grouping table in priority order: a note matching
// keywords from multiple buckets lands in the first matching entry. Buckets
// are added by extending this table, not by new matching code.
var bucketRules = []bucketRule{
	{
		Name:     "Engineering",
		Keywords: []string{"engineer", "structural", "design", "technical", "civil", "electrical"},
	},
	{
		Name:     "Schedule",
		Keywords: []string{"schedule", "timeline", "deadline", "meeting", "date", "week", "month"},
	},
	{
		Name:     "Budget & Pricing",
		Keywords: []string{"budget", "cost", "pricing", "dollar", "$", "price", "payment"},
	},
	{
		Name:     "Contracting",
		Keywords: []string{"contract", "vendor", "supplier", "agreement", "procurement"},
	},
	{
		Name:     "Environmental",
		Keywords: []string{"environmental", "biological", "cultural", "permitting", "epa"},
	},
	{
		Name:     "Interconnection",
		Keywords: []string{"interconnection", "utility", "grid", "substation"},
	},
	{
		Name:     "Land",
		Keywords: []string{"land", "property", "parcel", "lease", "easement"},
	},
	{
		Name:     "Geotech",
		Keywords: []string{"geotech", "soil", "foundation", "boring"},
	},
}

// BucketNames returns all bucket names in priority order, ending with the
// catch-all.
func BucketNames() []string {
	names := make([]string, 0, len(bucketRules)+1)
	for _, rule := range bucketRules {
		names = append(names, rule.Name)
	}
	return append(names, Other)
}
