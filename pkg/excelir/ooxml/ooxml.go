// Package ooxml reads raw workbook package parts: zip entries,
// relationship files and the workbook's sheet-name-to-part mapping.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// ReadFile returns the named package part, or nil when absent.
func ReadFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// ElementText collects the character data of the current element,
// including nested children, and consumes its end tag.
func ElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// ResolvePath resolves a relationship target against its base part
// directory inside the package.
func ResolvePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return baseDir + target
	}
	return baseDir + "/" + target
}

// RelsPath is the relationship part governing a package part:
// "xl/worksheets/sheet1.xml" maps to "xl/worksheets/_rels/sheet1.xml.rels".
func RelsPath(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// Relationship is one entry of a rels part.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// Relationships parses every entry of a rels part.
func Relationships(data []byte) []Relationship {
	var result []Relationship
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel Relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.ID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				}
			}
			result = append(result, rel)
		}
	}

	return result
}

// WorksheetPaths maps sheet names to worksheet part paths, resolved from
// workbook.xml and its relationships.
func WorksheetPaths(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	workbookXML, err := ReadFile(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return result, nil
	}
	namesByID := sheetRelationshipIDs(workbookXML)

	relsXML, err := ReadFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	if relsXML == nil {
		return result, nil
	}
	for _, rel := range Relationships(relsXML) {
		name, ok := namesByID[rel.ID]
		if !ok || !strings.Contains(strings.ToLower(rel.Target), "worksheet") {
			continue
		}
		result[name] = ResolvePath(rel.Target, "xl")
	}

	return result, nil
}

// sheetRelationshipIDs maps workbook relationship ids to sheet names.
func sheetRelationshipIDs(data []byte) map[string]string {
	byID := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				byID[rID] = name
			}
		}
	}

	return byID
}
