package uspto

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"

	"github.com/antchfx/xmlquery"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// recordElement is the element wrapping one application in a bulk package.
const recordElement = "PatentData"

// decodePackage reads every XML member of a bulk package zip, in member name
// order, and stream-parses its records.
func decodePackage(data []byte) ([]patent.RawRecord, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceParseError, "bulk package is not a valid zip")
	}
	files := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var out []patent.RawRecord
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceParseError, "failed to open package member").WithDetail(f.Name)
		}
		recs, err := decodeXML(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceParseError, "failed to parse package member").WithDetail(f.Name)
		}
		out = append(out, recs...)
	}
	return out, nil
}

// decodeXML streams the records of one XML document.
func decodeXML(r io.Reader) ([]patent.RawRecord, error) {
	parser, err := xmlquery.CreateStreamParser(r, "//"+recordElement)
	if err != nil {
		return nil, err
	}
	var out []patent.RawRecord
	for {
		node, err := parser.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, decodeXMLRecord(node))
	}
}

// decodeXMLRecord maps one record element.  Elements named after a
// sub-collection hold one child element per item.
func decodeXMLRecord(node *xmlquery.Node) patent.RawRecord {
	b := newRecordBuilder(patent.FormatXML)
	for _, el := range childElements(node) {
		if rel, ok := relationFor(el.Data); ok {
			var items []map[string]string
			for _, it := range childElements(el) {
				item := make(map[string]string)
				for _, f := range childElements(it) {
					item[f.Data] = f.InnerText()
				}
				items = append(items, item)
			}
			b.items(rel, items)
			continue
		}
		b.field(el.Data, el.InnerText())
	}
	return b.record()
}

func childElements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

//Personal.AI order the ending
