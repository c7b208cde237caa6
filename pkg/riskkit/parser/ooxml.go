// Package parser reads back what the riskkit helpers write into a workbook:
// cell blocks, native charts, anchored pictures and print areas.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// xmlRelationships is a .rels part.
type xmlRelationships struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// xmlWorkbook is the subset of xl/workbook.xml needed to map sheets to parts.
type xmlWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

// readZipFile returns the content of a package part, or nil when absent.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// decodePart unmarshals a package part into v. A missing part leaves v untouched
// and reports false.
func decodePart(r *zip.Reader, name string, v any) (bool, error) {
	data, err := readZipFile(r, name)
	if err != nil || data == nil {
		return false, err
	}
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// resolveRelativePath turns a relationship target into a package part name.
// Targets are relative to the directory of the part owning the relationship.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// relsPathFor returns the relationships part of a package part.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// readRels maps relationship id to resolved target for the given part.
func readRels(r *zip.Reader, part string) (map[string]string, map[string]string, error) {
	var rels xmlRelationships
	if _, err := decodePart(r, relsPathFor(part), &rels); err != nil {
		return nil, nil, err
	}
	targets := make(map[string]string, len(rels.Relationships))
	types := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		targets[rel.ID] = resolveRelativePath(rel.Target, path.Dir(part))
		types[rel.ID] = rel.Type
	}
	return targets, types, nil
}

// sheetParts maps sheet names to worksheet part names, in workbook order.
func sheetParts(r *zip.Reader) ([]string, map[string]string, error) {
	var wb xmlWorkbook
	ok, err := decodePart(r, "xl/workbook.xml", &wb)
	if err != nil || !ok {
		return nil, nil, err
	}
	targets, _, err := readRels(r, "xl/workbook.xml")
	if err != nil {
		return nil, nil, err
	}

	var order []string
	parts := make(map[string]string, len(wb.Sheets))
	for _, s := range wb.Sheets {
		target, ok := targets[s.RID]
		if !ok || !strings.Contains(strings.ToLower(target), "worksheet") {
			continue
		}
		order = append(order, s.Name)
		parts[s.Name] = target
	}
	return order, parts, nil
}

// sheetDrawings maps sheet names to their drawing part, for sheets that have one.
func sheetDrawings(r *zip.Reader) (map[string]string, error) {
	_, parts, err := sheetParts(r)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for sheetName, sheetPart := range parts {
		targets, types, err := readRels(r, sheetPart)
		if err != nil {
			return nil, err
		}
		for id, typ := range types {
			if strings.HasSuffix(strings.ToLower(typ), "/drawing") {
				result[sheetName] = targets[id]
				break
			}
		}
	}
	return result, nil
}
