package schema

import "fmt"

// Status is the outcome the comparer assigns to every node of a source forest.
type Status int

const (
	NotExist Status = iota
	Matched
	Modified
)

func (s Status) String() string {
	switch s {
	case NotExist:
		return "NotExist"
	case Matched:
		return "Matched"
	case Modified:
		return "Modified"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "NotExist":
		*s = NotExist
	case "Matched":
		*s = Matched
	case "Modified":
		*s = Modified
	default:
		return fmt.Errorf("unknown status %q", string(text))
	}
	return nil
}

type Schema struct {
	Name       string       `yaml:"name" json:"name"`
	DDL        string       `yaml:"ddl,omitempty" json:"ddl,omitempty"`
	Tables     []*Table     `yaml:"tables,omitempty" json:"tables,omitempty"`
	Views      []*View      `yaml:"views,omitempty" json:"views,omitempty"`
	Functions  []*Function  `yaml:"functions,omitempty" json:"functions,omitempty"`
	Procedures []*Procedure `yaml:"procedures,omitempty" json:"procedures,omitempty"`
	Status     Status       `yaml:"status" json:"status"`
}

type Table struct {
	Name        string    `yaml:"name" json:"name"`
	Columns     []*Column `yaml:"columns,omitempty" json:"columns,omitempty"`
	Indexes     []*Index  `yaml:"indexes,omitempty" json:"indexes,omitempty"`
	ForeignKeys []string  `yaml:"foreign_keys,omitempty" json:"foreign_keys,omitempty"`
	DDL         string    `yaml:"ddl" json:"ddl"`
	Status      Status    `yaml:"status" json:"status"`
}

type Column struct {
	Name     string `yaml:"name" json:"name"`
	DataType string `yaml:"data_type" json:"data_type"`
	IsPK     bool   `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	DDL      string `yaml:"ddl" json:"ddl"` // synthesized ALTER TABLE ... ADD COLUMN
	Status   Status `yaml:"status" json:"status"`
}

// Index is a CREATE INDEX statement attached to its table. Identity
// (ADD GENERATED) alterations are carried as Index entries too, named
// identity_<column> with Identity set.
type Index struct {
	Name     string `yaml:"name" json:"name"`
	DDL      string `yaml:"ddl" json:"ddl"`
	Identity bool   `yaml:"identity,omitempty" json:"identity,omitempty"`
	Status   Status `yaml:"status" json:"status"`
}

type View struct {
	Name   string `yaml:"name" json:"name"`
	DDL    string `yaml:"ddl" json:"ddl"`
	Status Status `yaml:"status" json:"status"`
}

type Function struct {
	Name   string `yaml:"name" json:"name"`
	DDL    string `yaml:"ddl" json:"ddl"`
	Status Status `yaml:"status" json:"status"`
}

type Procedure struct {
	Name   string `yaml:"name" json:"name"`
	DDL    string `yaml:"ddl" json:"ddl"`
	Status Status `yaml:"status" json:"status"`
}

// NewSchema returns an empty schema with every collection allocated.
func NewSchema(name string) *Schema {
	return &Schema{
		Name:       name,
		Tables:     []*Table{},
		Views:      []*View{},
		Functions:  []*Function{},
		Procedures: []*Procedure{},
		Status:     Matched,
	}
}

// NewTable returns an empty table with every collection allocated.
func NewTable(name, ddl string) *Table {
	return &Table{
		Name:        name,
		Columns:     []*Column{},
		Indexes:     []*Index{},
		ForeignKeys: []string{},
		DDL:         ddl,
		Status:      Matched,
	}
}

// FindTable returns the first table named name (case-insensitive).
func (s *Schema) FindTable(name string) *Table {
	k := Key(name)
	for _, t := range s.Tables {
		if Key(t.Name) == k {
			return t
		}
	}
	return nil
}

// LastTable returns the most recently added table named name.
func (s *Schema) LastTable(name string) *Table {
	k := Key(name)
	for i := len(s.Tables) - 1; i >= 0; i-- {
		if Key(s.Tables[i].Name) == k {
			return s.Tables[i]
		}
	}
	return nil
}

func (t *Table) FindColumn(name string) *Column {
	k := Key(name)
	for _, c := range t.Columns {
		if Key(c.Name) == k {
			return c
		}
	}
	return nil
}

// Find returns the schema named name from a forest, or nil.
func Find(forest []*Schema, name string) *Schema {
	k := Key(name)
	for _, s := range forest {
		if s != nil && Key(s.Name) == k {
			return s
		}
	}
	return nil
}

// DiffResult is one flattened node of an annotated forest, used for reports.
type DiffResult struct {
	Schema string
	Table  string // owning table for columns and indexes
	Kind   string // schema, table, column, index, view, function, procedure
	Name   string
	Status Status
}
