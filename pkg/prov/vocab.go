package prov

// ContextIRI is the canonical PROV-JSONLD context document. Every exported
// document references it as the last element of its @context array.
const ContextIRI = "https://openprovenance.org/prov-jsonld/context.json"

// PROV-JSON structural keys that are not statement categories.
const (
	KeyPrefix = "prefix"
	KeyBundle = "bundle"
)

// JSON-LD keywords used in PROV-JSONLD statements.
const (
	KeyContext  = "@context"
	KeyGraph    = "@graph"
	KeyType     = "@type"
	KeyID       = "@id"
	KeyValue    = "@value"
	KeyLanguage = "@language"
)

// Lifted PROV-JSONLD keys without a prefix: activity times on elements
// and the qualified time on relations.
const (
	KeyStartTime = "startTime"
	KeyEndTime   = "endTime"
	KeyTime      = "time"
)

// PROV-JSON category keys for element statements.
const (
	CategoryEntity   = "entity"
	CategoryActivity = "activity"
	CategoryAgent    = "agent"
)

// PROV-JSON category keys for relation statements.
const (
	CategoryGeneration     = "wasGeneratedBy"
	CategoryUsage          = "used"
	CategoryCommunication  = "wasInformedBy"
	CategoryStart          = "wasStartedBy"
	CategoryEnd            = "wasEndedBy"
	CategoryInvalidation   = "wasInvalidatedBy"
	CategoryDerivation     = "wasDerivedFrom"
	CategoryAttribution    = "wasAttributedTo"
	CategoryAssociation    = "wasAssociatedWith"
	CategoryDelegation     = "actedOnBehalfOf"
	CategoryInfluence      = "wasInfluencedBy"
	CategorySpecialization = "specializationOf"
	CategoryAlternate      = "alternateOf"
	CategoryMembership     = "hadMember"
)

// PROV-JSONLD statement types. The three extension relations
// (specialization, alternate, membership) live under the provext
// prefix in the canonical context.
const (
	TypeEntity         = "prov:Entity"
	TypeActivity       = "prov:Activity"
	TypeAgent          = "prov:Agent"
	TypeGeneration     = "prov:Generation"
	TypeUsage          = "prov:Usage"
	TypeCommunication  = "prov:Communication"
	TypeStart          = "prov:Start"
	TypeEnd            = "prov:End"
	TypeInvalidation   = "prov:Invalidation"
	TypeDerivation     = "prov:Derivation"
	TypeAttribution    = "prov:Attribution"
	TypeAssociation    = "prov:Association"
	TypeDelegation     = "prov:Delegation"
	TypeInfluence      = "prov:Influence"
	TypeSpecialization = "provext:Specialization"
	TypeAlternate      = "provext:Alternate"
	TypeMembership     = "provext:Membership"

	// TypeBundle marks a named sub-graph in a PROV-JSONLD @graph. It is
	// not a registry entry; bundles carry their own context and graph.
	TypeBundle = "prov:Bundle"
)

// Reserved PROV attribute keys.
const (
	AttrType      = "prov:type"
	AttrLabel     = "prov:label"
	AttrLocation  = "prov:location"
	AttrValue     = "prov:value"
	AttrRole      = "prov:role"
	AttrStartTime = "prov:startTime"
	AttrEndTime   = "prov:endTime"
	AttrTime      = "prov:time"
)

// Label properties from neighboring vocabularies, consulted by the visual
// builder when a statement has no prov:label.
const (
	RDFSLabel    = "rdfs:label"
	FOAFName     = "foaf:name"
	DCTermsTitle = "dcterms:title"
)
