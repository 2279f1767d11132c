package formats

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlLevels is the classic level document:
//
//	<levels name="...">
//	  <lvl number="1" name="...">
//	    <mapData><row>0,1,1,...</row>...</mapData>
//	    <objects><row>0,A,P,...</row>...</objects>
//	  </lvl>
//	</levels>
//
// Row element names are not significant; every child element is one row.
type xmlLevels struct {
	XMLName xml.Name   `xml:"levels"`
	ID      string     `xml:"id,attr"`
	Name    string     `xml:"name,attr"`
	Author  string     `xml:"author,attr"`
	Levels  []xmlLevel `xml:"lvl"`
}

type xmlLevel struct {
	Number  int     `xml:"number,attr"`
	Name    string  `xml:"name,attr"`
	MapData xmlRows `xml:"mapData"`
	Objects xmlRows `xml:"objects"`
}

type xmlRows struct {
	Rows []xmlRow `xml:",any"`
}

type xmlRow struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

func (r xmlRows) strings() []string {
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, strings.TrimSpace(row.Text))
	}
	return out
}

// ParseXML parses a level document in the classic XML layout.
func ParseXML(data []byte) (Document, error) {
	var xl xmlLevels
	if err := xml.Unmarshal(data, &xl); err != nil {
		return Document{}, fmt.Errorf("xml unmarshal: %w", err)
	}

	doc := Document{
		ID:     xl.ID,
		Name:   xl.Name,
		Author: xl.Author,
		Levels: make([]RawLevel, 0, len(xl.Levels)),
	}
	for _, l := range xl.Levels {
		doc.Levels = append(doc.Levels, RawLevel{
			Number:  l.Number,
			Name:    l.Name,
			Map:     l.MapData.strings(),
			Objects: l.Objects.strings(),
		})
	}
	return doc, nil
}

// MarshalXML writes doc in the classic XML layout.
func MarshalXML(doc Document) ([]byte, error) {
	xl := xmlLevels{ID: doc.ID, Name: doc.Name, Author: doc.Author}
	for _, l := range doc.Levels {
		xl.Levels = append(xl.Levels, xmlLevel{
			Number:  l.Number,
			Name:    l.Name,
			MapData: toXMLRows(l.Map),
			Objects: toXMLRows(l.Objects),
		})
	}
	out, err := xml.MarshalIndent(xl, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xml marshal: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func toXMLRows(rows []string) xmlRows {
	out := xmlRows{Rows: make([]xmlRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, xmlRow{XMLName: xml.Name{Local: "row"}, Text: r})
	}
	return out
}
