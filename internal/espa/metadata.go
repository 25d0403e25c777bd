// Package espa reads and writes the ESPA scene interchange convention: an
// XML metadata document describing a set of flat binary band files, each
// with an ENVI header sidecar. The QA generators and dilation tools locate
// bands, pull raster dimensions, and register newly produced bands through
// this package.
package espa

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eros-data/landsat.qa/internal/fsutil"
)

// Namespace is the ESPA metadata schema namespace.
const Namespace = "http://espa.cr.usgs.gov/v2"

// ErrBandNotFound reports that no band in the scene matched a lookup.
var ErrBandNotFound = errors.New("band not found")

// ESPA band data types as spelled in the XML data_type attribute.
const (
	TypeINT8    = "INT8"
	TypeUINT8   = "UINT8"
	TypeINT16   = "INT16"
	TypeUINT16  = "UINT16"
	TypeINT32   = "INT32"
	TypeUINT32  = "UINT32"
	TypeFLOAT32 = "FLOAT32"
	TypeFLOAT64 = "FLOAT64"
)

// ElemSize returns the per-pixel byte width of an ESPA data type.
func ElemSize(dataType string) (int, error) {
	switch dataType {
	case TypeINT8, TypeUINT8:
		return 1, nil
	case TypeINT16, TypeUINT16:
		return 2, nil
	case TypeINT32, TypeUINT32, TypeFLOAT32:
		return 4, nil
	case TypeFLOAT64:
		return 8, nil
	}
	return 0, fmt.Errorf("unknown data type %q", dataType)
}

// Metadata is a parsed ESPA scene metadata document. Global fields and band
// entries the toolkit does not model are retained as raw XML so a rewrite
// does not shed them.
type Metadata struct {
	XMLName xml.Name `xml:"espa_metadata"`
	Version string   `xml:"version,attr"`
	Global  Global   `xml:"global_metadata"`
	Bands   []Band   `xml:"bands>band"`

	// SourcePath is the file this document was parsed from. Band file
	// names in the document are relative to its directory.
	SourcePath string `xml:"-"`
}

// Global is the scene-level block of the metadata document.
type Global struct {
	DataProvider    string       `xml:"data_provider,omitempty"`
	Satellite       string       `xml:"satellite,omitempty"`
	Instrument      string       `xml:"instrument,omitempty"`
	AcquisitionDate string       `xml:"acquisition_date,omitempty"`
	Extra           []RawElement `xml:",any"`
}

// Band is one band entry. Attribute and element order follows the ESPA
// schema sequence.
type Band struct {
	Product   string `xml:"product,attr"`
	Source    string `xml:"source,attr,omitempty"`
	Name      string `xml:"name,attr"`
	Category  string `xml:"category,attr"`
	DataType  string `xml:"data_type,attr"`
	NLines    int    `xml:"nlines,attr"`
	NSamps    int    `xml:"nsamps,attr"`
	FillValue *int   `xml:"fill_value,attr,omitempty"`

	ShortName      string       `xml:"short_name,omitempty"`
	LongName       string       `xml:"long_name,omitempty"`
	FileName       string       `xml:"file_name,omitempty"`
	PixelSize      *PixelSize   `xml:"pixel_size,omitempty"`
	ResampleMethod string       `xml:"resample_method,omitempty"`
	DataUnits      string       `xml:"data_units,omitempty"`
	ValidRange     *ValidRange  `xml:"valid_range,omitempty"`
	Bitmap         *Bitmap      `xml:"bitmap_description,omitempty"`
	Classes        *ClassValues `xml:"class_values,omitempty"`
	AppVersion     string       `xml:"app_version,omitempty"`
	ProductionDate string       `xml:"production_date,omitempty"`
}

// PixelSize gives the ground resolution of one pixel.
type PixelSize struct {
	X     float64 `xml:"x,attr"`
	Y     float64 `xml:"y,attr"`
	Units string  `xml:"units,attr"`
}

// ValidRange bounds the meaningful pixel values of a band.
type ValidRange struct {
	Min float64 `xml:"min,attr"`
	Max float64 `xml:"max,attr"`
}

// Bitmap describes the meaning of each bit of a bit-packed band.
type Bitmap struct {
	Bits []BitDesc `xml:"bit"`
}

// BitDesc is one <bit num="N">description</bit> entry.
type BitDesc struct {
	Num  int    `xml:"num,attr"`
	Text string `xml:",chardata"`
}

// ClassValues describes the meaning of each value of a class-coded band.
type ClassValues struct {
	Classes []ClassDesc `xml:"class"`
}

// ClassDesc is one <class num="N">description</class> entry.
type ClassDesc struct {
	Num  int    `xml:"num,attr"`
	Text string `xml:",chardata"`
}

// RawElement preserves an element this package does not model across a
// parse/rewrite cycle.
type RawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// ParseMetadata reads and parses a scene metadata file.
func ParseMetadata(fsys fsutil.FileSystem, path string) (*Metadata, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %v", path, err)
	}
	var m Metadata
	if err := xml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %v", path, err)
	}
	m.SourcePath = path
	m.normalize()
	return &m, nil
}

// ResolveFile turns a band file name from the document into a path, rooted
// at the metadata file's directory unless already absolute.
func (m *Metadata) ResolveFile(name string) string {
	if filepath.IsAbs(name) || m.SourcePath == "" {
		return name
	}
	return filepath.Join(filepath.Dir(m.SourcePath), name)
}

// Write re-emits the metadata document to path. The document is regenerated
// from the parsed model, so element order may differ from the input; the
// information content does not.
func (m *Metadata) Write(fsys fsutil.FileSystem, path string) error {
	m.normalize()
	out, err := xml.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %v", err)
	}
	doc := []byte(xml.Header + string(out) + "\n")
	if err := fsys.WriteFile(path, doc, os.FileMode(0644)); err != nil {
		return fmt.Errorf("write metadata %s: %v", path, err)
	}
	return nil
}

// AppendBands adds band entries to an existing scene metadata file. Callers
// persist band files before registering them, so a failed append never
// leaves the XML pointing at a half-written band.
func AppendBands(fsys fsutil.FileSystem, path string, bands ...Band) error {
	m, err := ParseMetadata(fsys, path)
	if err != nil {
		return err
	}
	m.Bands = append(m.Bands, bands...)
	return m.Write(fsys, path)
}

// BandByName returns the first band with the given name.
func (m *Metadata) BandByName(name string) (*Band, error) {
	for i := range m.Bands {
		if m.Bands[i].Name == name {
			return &m.Bands[i], nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", ErrBandNotFound, name)
}

// QABandByName returns the first band with the given name in the qa
// category.
func (m *Metadata) QABandByName(name string) (*Band, error) {
	for i := range m.Bands {
		if m.Bands[i].Name == name && m.Bands[i].Category == "qa" {
			return &m.Bands[i], nil
		}
	}
	return nil, fmt.Errorf("%w: name %q category \"qa\"", ErrBandNotFound, name)
}

// CheckDataType validates a band's declared element type.
func (b *Band) CheckDataType(want string) error {
	if b.DataType != want {
		return fmt.Errorf("band %s: data type %s, expected %s", b.Name, b.DataType, want)
	}
	return nil
}

// LegacySensor reports whether the scene's instrument selects the TM/ETM+
// Level-1 QA bit layout. Anything else (OLI, TIRS, OLI_TIRS) uses the
// modern layout.
func (m *Metadata) LegacySensor() bool {
	switch m.Global.Instrument {
	case "TM", "ETM", "ETM+":
		return true
	}
	return false
}

// SceneBase strips the .xml extension from a metadata path, yielding the
// prefix shared by the scene's band files.
func SceneBase(xmlPath string) (string, error) {
	ext := filepath.Ext(xmlPath)
	if ext == "" {
		return "", fmt.Errorf("metadata file %s has no extension", xmlPath)
	}
	return strings.TrimSuffix(xmlPath, ext), nil
}

// normalize strips redundant namespace bookkeeping picked up during
// unmarshaling so a rewrite does not emit duplicate xmlns declarations on
// retained elements.
func (m *Metadata) normalize() {
	if m.XMLName.Local == "" {
		m.XMLName = xml.Name{Space: Namespace, Local: "espa_metadata"}
	}
	m.Global.Extra = normalizeRaw(m.Global.Extra)
}

func normalizeRaw(elems []RawElement) []RawElement {
	for i := range elems {
		elems[i].XMLName.Space = ""
		attrs := elems[i].Attrs[:0]
		for _, a := range elems[i].Attrs {
			if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
				continue
			}
			attrs = append(attrs, a)
		}
		elems[i].Attrs = attrs
	}
	return elems
}
