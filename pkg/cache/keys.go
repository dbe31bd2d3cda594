package cache

// Keyer builds cache keys for the pipeline stages. Implementations must
// be deterministic: equal inputs and options yield equal keys.
type Keyer interface {
	// ConvertKey identifies a PROV-JSON to PROV-JSONLD conversion.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string

	// DOTKey identifies DOT emission for a PROV-JSONLD input.
	DOTKey(inputHash string, opts DOTKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a DOT text.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ConvertKeyOpts fingerprints the options that change conversion output.
type ConvertKeyOpts struct {
	Pretty bool `json:"pretty"`
}

// DOTKeyOpts fingerprints the options that change DOT output.
type DOTKeyOpts struct {
	Direction      string `json:"direction"`
	Font           string `json:"font,omitempty"`
	ShowAttributes bool   `json:"show_attributes"`
	ShowLabels     bool   `json:"show_labels"`
	Strict         bool   `json:"strict"`
}

// ArtifactKeyOpts fingerprints the options that change a rendered image.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes inputs and option fingerprints into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ConvertKey generates a key for conversion output caching.
func (k *DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", inputHash, opts)
}

// DOTKey generates a key for DOT text caching.
func (k *DefaultKeyer) DOTKey(inputHash string, opts DOTKeyOpts) string {
	return hashKey("dot", inputHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
