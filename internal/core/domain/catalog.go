package domain

// Line is a product line reference record.
type Line struct {
	ID     int    `json:"id"`
	Code   string `json:"cod_linea"`
	Name   string `json:"linea"`
	Active bool   `json:"activo"`
}

// Segment is a product segment reference record.
type Segment struct {
	ID   int    `json:"id"`
	Name string `json:"segmento"`
}

// Catalogs bundles the reference lists used to populate form selectors.
type Catalogs struct {
	Lines    []Line    `json:"lineas"`
	Segments []Segment `json:"segmentos"`
}

// LineByID returns the line with the given id, or nil.
func (c *Catalogs) LineByID(id int) *Line {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return &c.Lines[i]
		}
	}
	return nil
}

// SegmentByID returns the segment with the given id, or nil.
func (c *Catalogs) SegmentByID(id int) *Segment {
	for i := range c.Segments {
		if c.Segments[i].ID == id {
			return &c.Segments[i]
		}
	}
	return nil
}
