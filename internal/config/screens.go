package config

import (
	"maps"

	"github.com/go-faster/errors"

	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/view"
)

// ScreenConfig declares one list screen. Capability toggles default to on
// when omitted.
type ScreenConfig struct {
	Title         string        `toml:"title,omitempty"`
	SortField     string        `toml:"sort_field,omitempty"`
	SortDirection string        `toml:"sort_direction,omitempty"`
	PerPage       int           `toml:"per_page,omitempty"`
	Sorting       *bool         `toml:"sorting,omitempty"`
	Pagination    *bool         `toml:"pagination,omitempty"`
	Expansion     *bool         `toml:"expansion,omitempty"`
	SearchFields  []string      `toml:"search_fields,omitempty"`
	Columns       []string      `toml:"columns,omitempty"`
	Fields        []FieldConfig `toml:"fields,omitempty"`
}

// FieldConfig declares the kind of one column.
type FieldConfig struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind,omitempty"`
	Label  string `toml:"label,omitempty"`
	Derive string `toml:"derive,omitempty"`
}

func enabled(b *bool) bool { return b == nil || *b }

// Schema builds the record schema from the field declarations. A derive
// expression implies the derived kind.
func (s ScreenConfig) Schema() (*record.Schema, error) {
	schema := record.NewSchema()
	for _, fc := range s.Fields {
		if fc.Name == "" {
			return nil, errors.New("field without a name")
		}
		kind, ok := record.ParseKind(fc.Kind)
		if !ok {
			return nil, errors.Errorf("field %s: unknown kind %q", fc.Name, fc.Kind)
		}
		field := record.Field{Name: fc.Name, Label: fc.Label, Kind: kind}
		if fc.Derive != "" {
			derive, ok := record.ParseDerive(fc.Derive)
			if !ok {
				return nil, errors.Errorf("field %s: unknown derive expression %q", fc.Name, fc.Derive)
			}
			field.Kind, field.Derive = record.KindDerivedBool, derive
		} else if kind == record.KindDerivedBool {
			return nil, errors.Errorf("field %s: derived kind needs a derive expression", fc.Name)
		}
		schema.Add(field)
	}
	if d := s.SortDirection; d != "" && sorting.ParseDirection(d) == sorting.None {
		return nil, errors.Errorf("unknown sort direction %q", d)
	}
	return schema, nil
}

// ViewConfig turns the screen into a controller config, taking page size
// and locale from display when the screen doesn't set them.
func (s ScreenConfig) ViewConfig(display DisplayConfig) (view.Config, error) {
	schema, err := s.Schema()
	if err != nil {
		return view.Config{}, err
	}
	perPage := s.PerPage
	if perPage < 1 {
		perPage = display.PerPage
	}
	return view.Config{
		SortField:         s.SortField,
		SortDirection:     sorting.ParseDirection(s.SortDirection),
		ItemsPerPage:      perPage,
		MaxVisiblePages:   display.MaxVisiblePages,
		DisableSorting:    !enabled(s.Sorting),
		DisablePagination: !enabled(s.Pagination),
		DisableExpansion:  !enabled(s.Expansion),
		Schema:            schema,
		Locale:            display.Locale,
	}, nil
}

// Label returns the header text of a column.
func (s ScreenConfig) Label(column string) string {
	for _, fc := range s.Fields {
		if fc.Name == column && fc.Label != "" {
			return fc.Label
		}
	}
	return column
}

// Builtin returns a copy of the built-in screen declarations.
func Builtin() map[string]ScreenConfig {
	return maps.Clone(builtinScreens)
}

var builtinScreens = map[string]ScreenConfig{
	"areas": {
		Title:         "Áreas",
		SortField:     "created_at",
		SortDirection: "desc",
		SearchFields:  []string{"nombre", "descripcion"},
		Columns:       []string{"id", "nombre", "descripcion", "is_active", "has_cargos", "created_at"},
		Fields: []FieldConfig{
			{Name: "nombre", Kind: "string", Label: "Nombre"},
			{Name: "descripcion", Kind: "string", Label: "Descripción"},
			{Name: "is_active", Kind: "bool", Label: "Activa"},
			{Name: "has_cargos", Label: "Cargos", Derive: "non_empty:cargos"},
			{Name: "created_at", Kind: "date", Label: "Creada"},
		},
	},
	"cargos": {
		Title:         "Cargos",
		SortField:     "created_at",
		SortDirection: "desc",
		SearchFields:  []string{"nombre", "descripcion", "area_detail.nombre"},
		Columns:       []string{"id", "nombre", "descripcion", "area_detail.nombre", "is_active", "created_at"},
		Fields: []FieldConfig{
			{Name: "nombre", Kind: "string", Label: "Nombre"},
			{Name: "descripcion", Kind: "string", Label: "Descripción"},
			{Name: "area_detail.nombre", Kind: "string", Label: "Área"},
			{Name: "is_active", Kind: "bool", Label: "Activo"},
			{Name: "created_at", Kind: "date", Label: "Creado"},
		},
	},
	"users": {
		Title:         "Usuarios",
		SortField:     "date_joined",
		SortDirection: "desc",
		SearchFields:  []string{"username", "first_name", "last_name", "email"},
		Columns:       []string{"id", "username", "first_name", "last_name", "email", "is_active", "date_joined"},
		Fields: []FieldConfig{
			{Name: "username", Kind: "string", Label: "Usuario"},
			{Name: "first_name", Kind: "string", Label: "Nombre"},
			{Name: "last_name", Kind: "string", Label: "Apellido"},
			{Name: "email", Kind: "string", Label: "Correo"},
			{Name: "is_active", Kind: "bool", Label: "Activo"},
			{Name: "date_joined", Kind: "date", Label: "Registro"},
		},
	},
	"knowledge": {
		Title:         "Base de conocimiento",
		SortField:     "created_at",
		SortDirection: "desc",
		SearchFields:  []string{"question", "answer", "keywords"},
		Columns:       []string{"id", "question", "answer", "category.name", "has_embedding", "is_active", "created_at"},
		Fields: []FieldConfig{
			{Name: "question", Kind: "string", Label: "Pregunta"},
			{Name: "answer", Kind: "string", Label: "Respuesta"},
			{Name: "category.name", Kind: "string", Label: "Categoría"},
			{Name: "has_embedding", Label: "Embedding", Derive: "non_empty:question_embedding"},
			{Name: "is_active", Kind: "bool", Label: "Activa"},
			{Name: "created_at", Kind: "date", Label: "Creada"},
		},
	},
	"categories": {
		Title:        "Categorías",
		SearchFields: []string{"name", "description"},
		Columns:      []string{"id", "name", "description", "is_active", "knowledge_count", "created_at"},
		Fields: []FieldConfig{
			{Name: "name", Kind: "string", Label: "Nombre"},
			{Name: "description", Kind: "string", Label: "Descripción"},
			{Name: "is_active", Kind: "bool", Label: "Activa"},
			{Name: "knowledge_count", Kind: "number", Label: "Preguntas"},
			{Name: "created_at", Kind: "date", Label: "Creada"},
		},
	},
}
