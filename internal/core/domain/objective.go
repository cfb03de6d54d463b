package domain

// Objective is the marketing goal of a campaign.
type Objective string

const (
	ObjectiveBrandAwareness Objective = "Brand Awareness"
	ObjectiveReach          Objective = "Reach"
	ObjectiveTraffic        Objective = "Traffic"
	ObjectiveEngagement     Objective = "Engagement"
	ObjectiveAppInstalls    Objective = "App Installs"
	ObjectiveVideoViews     Objective = "Video Views"
	ObjectiveLeadGeneration Objective = "Lead Generation"
	ObjectiveMessages       Objective = "Messages"
	ObjectiveConversions    Objective = "Conversions"
	ObjectiveCatalogSales   Objective = "Catalog Sales"
)

// Objectives lists every recognized objective in display order.
var Objectives = []Objective{
	ObjectiveBrandAwareness,
	ObjectiveReach,
	ObjectiveTraffic,
	ObjectiveEngagement,
	ObjectiveAppInstalls,
	ObjectiveVideoViews,
	ObjectiveLeadGeneration,
	ObjectiveMessages,
	ObjectiveConversions,
	ObjectiveCatalogSales,
}

// Code returns the three letter upper-case code used as the second segment
// of a campaign ID.
func (o Objective) Code() string {
	return shortCode(string(o))
}

// Valid reports whether o is one of the recognized objectives.
func (o Objective) Valid() bool {
	for _, v := range Objectives {
		if v == o {
			return true
		}
	}
	return false
}

// objectiveAliases maps common shorthand onto objectives that prefix
// matching cannot reach.
var objectiveAliases = map[string]string{
	"awareness": string(ObjectiveBrandAwareness),
	"installs":  string(ObjectiveAppInstalls),
	"views":     string(ObjectiveVideoViews),
	"leads":     string(ObjectiveLeadGeneration),
	"sales":     string(ObjectiveCatalogSales),
}

// ParseObjective resolves a display name, slug, code or alias such as
// "awareness" into an Objective.
func ParseObjective(s string) (Objective, error) {
	names := make([]string, len(Objectives))
	for i, o := range Objectives {
		names[i] = string(o)
	}
	if i, ok := resolveName(s, names, objectiveAliases); ok {
		return Objectives[i], nil
	}
	return "", &InvalidCriteriaError{Field: "objective", Value: s, Reason: "unrecognized objective"}
}

// ObjectiveByCode returns the objective whose Code equals code.
func ObjectiveByCode(code string) (Objective, bool) {
	for _, o := range Objectives {
		if o.Code() == code {
			return o, true
		}
	}
	return "", false
}
