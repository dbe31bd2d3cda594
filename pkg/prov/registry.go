package prov

// schemas holds every statement kind in registry order. The order is
// load-bearing: exporters emit @graph statements category by category in
// exactly this sequence.
var schemas = []*Schema{
	{
		Category: CategoryEntity,
		Type:     TypeEntity,
		Kind:     KindElement,
		Node:     NodeStyle{Shape: "ellipse", FillColor: "#FFFC87"},
	},
	{
		Category: CategoryActivity,
		Type:     TypeActivity,
		Kind:     KindElement,
		Node:     NodeStyle{Shape: "box", FillColor: "#9FB1FC"},
	},
	{
		Category: CategoryAgent,
		Type:     TypeAgent,
		Kind:     KindElement,
		Node:     NodeStyle{Shape: "house", FillColor: "#FDB266"},
	},
	{
		Category: CategoryGeneration,
		Type:     TypeGeneration,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:entity", Role: "entity"},
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:time", Role: "time"},
		},
		Source: "activity",
		Target: "entity",
		Edge:   EdgeStyle{Label: "wasGeneratedBy", Style: "solid", Dir: "back", Color: "#006400"},
	},
	{
		Category: CategoryUsage,
		Type:     TypeUsage,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:entity", Role: "entity"},
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:time", Role: "time"},
		},
		Source: "activity",
		Target: "entity",
		Edge:   EdgeStyle{Label: "used", Style: "solid", Dir: "forward", Color: "#8b0101"},
	},
	{
		Category: CategoryCommunication,
		Type:     TypeCommunication,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:informed", Role: "informed"},
			{JSONKey: "prov:informant", Role: "informant"},
		},
		Source: "informant",
		Target: "informed",
		Edge:   EdgeStyle{Label: "wasInformedBy", Style: "solid", Dir: "back"},
	},
	{
		Category: CategoryStart,
		Type:     TypeStart,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:trigger", Role: "trigger"},
			{JSONKey: "prov:starter", Role: "starter"},
			{JSONKey: "prov:time", Role: "time"},
		},
		Source: "trigger",
		Target: "activity",
		Edge:   EdgeStyle{Label: "wasStartedBy", Style: "solid", Dir: "back"},
	},
	{
		Category: CategoryEnd,
		Type:     TypeEnd,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:trigger", Role: "trigger"},
			{JSONKey: "prov:ender", Role: "ender"},
			{JSONKey: "prov:time", Role: "time"},
		},
		Source: "trigger",
		Target: "activity",
		Edge:   EdgeStyle{Label: "wasEndedBy", Style: "solid", Dir: "back"},
	},
	{
		Category: CategoryInvalidation,
		Type:     TypeInvalidation,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:entity", Role: "entity"},
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:time", Role: "time"},
		},
		Source: "activity",
		Target: "entity",
		Edge:   EdgeStyle{Label: "wasInvalidatedBy", Style: "solid", Dir: "back"},
	},
	{
		Category: CategoryDerivation,
		Type:     TypeDerivation,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:generatedEntity", Role: "generatedEntity"},
			{JSONKey: "prov:usedEntity", Role: "usedEntity"},
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:generation", Role: "generation"},
			{JSONKey: "prov:usage", Role: "usage"},
		},
		Source: "usedEntity",
		Target: "generatedEntity",
		Edge:   EdgeStyle{Label: "wasDerivedFrom", Style: "solid", Dir: "back"},
	},
	{
		Category: CategoryAttribution,
		Type:     TypeAttribution,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:entity", Role: "entity"},
			{JSONKey: "prov:agent", Role: "agent"},
		},
		Source: "entity",
		Target: "agent",
		Edge:   EdgeStyle{Label: "wasAttributedTo", Style: "dashed", Dir: "back"},
	},
	{
		Category: CategoryAssociation,
		Type:     TypeAssociation,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:activity", Role: "activity"},
			{JSONKey: "prov:agent", Role: "agent"},
			{JSONKey: "prov:plan", Role: "plan"},
		},
		Source: "activity",
		Target: "agent",
		Edge:   EdgeStyle{Label: "wasAssociatedWith", Style: "solid", Dir: "forward", Color: "#fed37f"},
	},
	{
		Category: CategoryDelegation,
		Type:     TypeDelegation,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:delegate", Role: "delegate"},
			{JSONKey: "prov:responsible", Role: "responsible"},
			{JSONKey: "prov:activity", Role: "activity"},
		},
		Source: "responsible",
		Target: "delegate",
		Edge:   EdgeStyle{Label: "actedOnBehalfOf", Style: "dashed", Dir: "back"},
	},
	{
		Category: CategoryInfluence,
		Type:     TypeInfluence,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:influencee", Role: "influencee"},
			{JSONKey: "prov:influencer", Role: "influencer"},
		},
		Source: "influencer",
		Target: "influencee",
		Edge:   EdgeStyle{Label: "wasInfluencedBy", Style: "dotted", Dir: "back"},
	},
	{
		Category: CategorySpecialization,
		Type:     TypeSpecialization,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:specificEntity", Role: "specificEntity"},
			{JSONKey: "prov:generalEntity", Role: "generalEntity"},
		},
		Source: "generalEntity",
		Target: "specificEntity",
		Edge:   EdgeStyle{Label: "specializationOf", Style: "solid", Dir: "back", Arrowhead: "onormal"},
	},
	{
		Category: CategoryAlternate,
		Type:     TypeAlternate,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:alternate1", Role: "alternate1"},
			{JSONKey: "prov:alternate2", Role: "alternate2"},
		},
		Source: "alternate1",
		Target: "alternate2",
		Edge:   EdgeStyle{Label: "alternateOf", Style: "dashed", Dir: "none"},
	},
	{
		Category: CategoryMembership,
		Type:     TypeMembership,
		Kind:     KindRelation,
		Properties: []Property{
			{JSONKey: "prov:collection", Role: "collection"},
			{JSONKey: "prov:entity", Role: "entity"},
		},
		Source: "collection",
		Target: "entity",
		Edge:   EdgeStyle{Label: "hadMember", Style: "dotted", Dir: "forward"},
	},
}

// referenceRoles lists role names whose values reference other nodes.
// The visual builder excludes them from attribute display.
var referenceRoles = map[string]struct{}{
	"entity":          {},
	"activity":        {},
	"agent":           {},
	"generatedEntity": {},
	"usedEntity":      {},
	"informed":        {},
	"informant":       {},
	"trigger":         {},
	"starter":         {},
	"ender":           {},
	"delegate":        {},
	"responsible":     {},
	"plan":            {},
	"influencee":      {},
	"influencer":      {},
	"specificEntity":  {},
	"generalEntity":   {},
	"alternate1":      {},
	"alternate2":      {},
	"collection":      {},
	"generation":      {},
	"usage":           {},
}

var (
	byCategory = make(map[string]*Schema, len(schemas))
	byType     = make(map[string]*Schema, len(schemas))
)

func init() {
	for _, s := range schemas {
		byCategory[s.Category] = s
		byType[s.Type] = s
	}
}

// Lookup returns the schema registered for a PROV-JSON category key.
func Lookup(category string) (*Schema, bool) {
	s, ok := byCategory[category]
	return s, ok
}

// LookupType returns the schema registered for a PROV-JSONLD @type.
func LookupType(jsonldType string) (*Schema, bool) {
	s, ok := byType[jsonldType]
	return s, ok
}

// Schemas returns every registered schema in registry order. Callers must
// not modify the returned slice.
func Schemas() []*Schema {
	return schemas
}

// Categories returns the PROV-JSON category keys in registry order.
func Categories() []string {
	cats := make([]string, len(schemas))
	for i, s := range schemas {
		cats[i] = s.Category
	}
	return cats
}

// IsReferenceRole reports whether name is an endpoint or qualifier role
// that references another node.
func IsReferenceRole(name string) bool {
	_, ok := referenceRoles[name]
	return ok
}
