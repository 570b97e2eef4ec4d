package quill

// Manifest is the `Quill` table declared in Quill.toml/Quill.yaml.
type Manifest struct {
	Name         string `toml:"name"          yaml:"name"`
	Backend      string `toml:"backend"       yaml:"backend"`
	TemplateFile string `toml:"template_file" yaml:"template_file"`
	Description  string `toml:"description"   yaml:"description"`
	Author       string `toml:"author"        yaml:"author"`
	Version      string `toml:"version"       yaml:"version"`
	Example      string `toml:"example"       yaml:"example"`
}

// fieldDecl is one entry of a manifest's `fields`/`cards.*.fields` list.
// Declared as a list rather than a keyed table so declaration order (which
// [fieldschema.Build] relies on for deterministic PropertyOrder) survives
// both TOML's array-of-tables and YAML's sequences without a separate
// ordered-map layer.
type fieldDecl struct {
	Name        string         `toml:"name"        yaml:"name"`
	Type        string         `toml:"type"        yaml:"type"`
	Title       string         `toml:"title"       yaml:"title"`
	Description string         `toml:"description" yaml:"description"`
	Default     any            `toml:"default"     yaml:"default"`
	Examples    []any          `toml:"examples"    yaml:"examples"`
	Required    bool           `toml:"required"    yaml:"required"`
	Enum        []string       `toml:"enum"        yaml:"enum"`
	Items       *fieldDecl     `toml:"items"       yaml:"items"`
	Properties  []fieldDecl    `toml:"properties"  yaml:"properties"`
	UI          map[string]any `toml:"ui"          yaml:"ui"`
}

// cardDecl is one entry of a manifest's `cards` list.
type cardDecl struct {
	Name   string      `toml:"name"   yaml:"name"`
	Fields []fieldDecl `toml:"fields" yaml:"fields"`
}

// manifestDocument is the full shape of a Quill.toml/Quill.yaml file: the
// `Quill` manifest table plus sibling `fields` and `cards` lists.
type manifestDocument struct {
	Quill  Manifest    `toml:"Quill" yaml:"Quill"`
	Fields []fieldDecl `toml:"fields" yaml:"fields"`
	Cards  []cardDecl  `toml:"cards"  yaml:"cards"`
}
