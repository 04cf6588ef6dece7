package mapping

// Identity field targets. These are the non-score columns an upload can
// carry; drill targets come from the event's schema instead.
const (
	FieldFirst      = "first"
	FieldLast       = "last"
	FieldName       = "name"
	FieldNumber     = "number"
	FieldAgeGroup   = "age_group"
	FieldExternalID = "external_id"
	FieldTeamName   = "team_name"
	FieldPosition   = "position"
)

// identitySynonyms maps a normalized header token to its identity target.
// Grown from headers seen in real organizer spreadsheets; extend here, not
// in the matcher.
var identitySynonyms = map[string]string{
	"first":       FieldFirst,
	"first_name":  FieldFirst,
	"firstname":   FieldFirst,
	"fname":       FieldFirst,
	"given_name":  FieldFirst,
	"last":        FieldLast,
	"last_name":   FieldLast,
	"lastname":    FieldLast,
	"lname":       FieldLast,
	"surname":     FieldLast,
	"family_name": FieldLast,

	"name":         FieldName,
	"full_name":    FieldName,
	"fullname":     FieldName,
	"player_name":  FieldName,
	"player":       FieldName,
	"athlete":      FieldName,
	"athlete_name": FieldName,
	"participant":  FieldName,

	"number":         FieldNumber,
	"no":             FieldNumber,
	"num":            FieldNumber,
	"jersey":         FieldNumber,
	"jersey_number":  FieldNumber,
	"jersey_no":      FieldNumber,
	"player_number":  FieldNumber,
	"uniform":        FieldNumber,
	"uniform_number": FieldNumber,

	"age":       FieldAgeGroup,
	"age_group": FieldAgeGroup,
	"group":     FieldAgeGroup,
	"division":  FieldAgeGroup,
	"div":       FieldAgeGroup,
	"grade":     FieldAgeGroup,

	"external_id": FieldExternalID,
	"athlete_id":  FieldExternalID,
	"player_id":   FieldExternalID,
	"reg_id":      FieldExternalID,
	"bib":         FieldExternalID,
	"bib_number":  FieldExternalID,
	"bib_no":      FieldExternalID,

	"team":      FieldTeamName,
	"team_name": FieldTeamName,
	"club":      FieldTeamName,
	"school":    FieldTeamName,

	"position": FieldPosition,
	"pos":      FieldPosition,
}

// IsIdentityField reports whether target is one of the identity field
// constants rather than a drill key.
func IsIdentityField(target string) bool {
	switch target {
	case FieldFirst, FieldLast, FieldName, FieldNumber,
		FieldAgeGroup, FieldExternalID, FieldTeamName, FieldPosition:
		return true
	}
	return false
}
