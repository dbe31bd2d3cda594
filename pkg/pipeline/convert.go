package pipeline

import (
	stderrors "errors"

	"github.com/provgraph/provgraph/pkg/document"
	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/jsonld"
	"github.com/provgraph/provgraph/pkg/provjson"
)

// convertOutput is the conversion stage result: the serialized
// PROV-JSONLD plus the statement counts the CLI and API report. It is
// also the cache entry for the convert stage, so a hit restores the
// counts without re-decoding the input.
type convertOutput struct {
	Output    []byte `json:"output"`
	Elements  int    `json:"elements"`
	Relations int    `json:"relations"`
	Bundles   int    `json:"bundles"`
}

// structuralErrs are decode failures where the JSON parsed but the
// document shape is wrong. They get their own error code so callers
// can tell a broken document from unparseable bytes.
var structuralErrs = []error{
	provjson.ErrNotObject,
	jsonld.ErrNotArray,
	document.ErrInvalidID,
	document.ErrDuplicateNode,
}

func decodeCode(err error) errors.Code {
	for _, sentinel := range structuralErrs {
		if stderrors.Is(err, sentinel) {
			return errors.ErrCodeInvalidDocument
		}
	}
	return errors.ErrCodeInvalidInput
}

// convert runs the forward translation without caching: decode the
// PROV-JSON input into the canonical model and serialize it as
// PROV-JSONLD.
func convert(input []byte, opts Options) (*convertOutput, error) {
	doc, err := provjson.Decode(input)
	if err != nil {
		return nil, errors.Wrap(decodeCode(err), err, "invalid PROV-JSON")
	}

	out, err := marshalDoc(doc, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize PROV-JSONLD")
	}

	nodes, relations := doc.Totals()
	return &convertOutput{
		Output:    out,
		Elements:  nodes,
		Relations: relations,
		Bundles:   len(doc.Bundles()),
	}, nil
}

func marshalDoc(doc *document.Document, opts Options) ([]byte, error) {
	if opts.Pretty {
		return jsonld.MarshalIndent(doc, "", "  ")
	}
	return jsonld.Marshal(doc)
}
