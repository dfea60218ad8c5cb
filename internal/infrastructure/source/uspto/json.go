package uspto

import (
	"github.com/tidwall/gjson"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const responsePath = "queryResults.searchResponse.response"

// searchResult is a decoded search answer.
type searchResult struct {
	QueryID  string
	NumFound int
	Docs     []patent.RawRecord
}

func decodeSearch(data []byte) (searchResult, error) {
	if !gjson.ValidBytes(data) {
		return searchResult{}, parseError("search response is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	resp := root.Get(responsePath)
	numFound := resp.Get("numFound")
	if !numFound.Exists() {
		return searchResult{}, parseError("search response has no numFound")
	}

	out := searchResult{
		QueryID:  root.Get("queryId").String(),
		NumFound: int(numFound.Int()),
	}
	for _, doc := range resp.Get("docs").Array() {
		if !doc.IsObject() {
			continue
		}
		out.Docs = append(out.Docs, decodeJSONDoc(doc))
	}
	return out, nil
}

// decodeJSONDoc maps one search document.  Arrays of objects are
// sub-collections; other arrays are ignored.
func decodeJSONDoc(doc gjson.Result) patent.RawRecord {
	b := newRecordBuilder(patent.FormatJSON)
	doc.ForEach(func(key, value gjson.Result) bool {
		if rel, ok := relationFor(key.String()); ok {
			var items []map[string]string
			for _, it := range value.Array() {
				if !it.IsObject() {
					continue
				}
				item := make(map[string]string)
				it.ForEach(func(k, v gjson.Result) bool {
					item[k.String()] = v.String()
					return true
				})
				items = append(items, item)
			}
			b.items(rel, items)
			return true
		}
		if value.IsArray() || value.IsObject() {
			return true
		}
		b.field(key.String(), value.String())
		return true
	})
	return b.record()
}

func jobStatus(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", parseError("package status is not valid JSON")
	}
	status := gjson.GetBytes(data, "jobStatus")
	if !status.Exists() {
		return "", parseError("package status has no jobStatus")
	}
	return status.String(), nil
}

func parseError(msg string) *errors.AppError {
	return errors.New(errors.ErrCodeSourceParseError, msg)
}

//Personal.AI order the ending
