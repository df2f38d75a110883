package prompt

import "vibary/internal/domain"

// Schema is a provider neutral subset of JSON schema
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	TypeObject = "object"
	TypeArray  = "array"
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "boolean"
)

func str() *Schema { return &Schema{Type: TypeString} }

func enum[T ~string](values []T) *Schema {
	s := &Schema{Type: TypeString}
	for _, v := range values {
		s.Enum = append(s.Enum, string(v))
	}
	return s
}

// DocumentSchema describes a complete document
func DocumentSchema() *Schema {
	palette := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"primary":    str(),
			"secondary":  str(),
			"accent":     str(),
			"background": str(),
			"text":       str(),
		},
		Required: []string{"primary", "secondary", "accent", "background", "text"},
	}

	visual := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"layout":            enum(domain.Layouts),
			"backgroundPattern": enum(domain.Patterns),
			"palette":           palette,
			"visualParams": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"shape":      enum(domain.Shapes),
					"motion":     enum(domain.Motions),
					"complexity": {Type: TypeNumber},
					"speed":      {Type: TypeNumber},
				},
				Required: []string{"shape", "motion", "complexity", "speed"},
			},
			"galleryItems": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"title":       str(),
						"description": str(),
						"icon":        str(),
					},
					Required: []string{"title", "description"},
				},
			},
		},
		Required: []string{"layout", "backgroundPattern", "palette", "visualParams"},
	}

	scene := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":           str(),
			"chapterTitle": str(),
			"paragraphs": {
				Type:        TypeArray,
				Items:       str(),
				Description: "2-3 short, impactful paragraphs. Use *asterisks* for highlights.",
			},
			"highlightPhrase": str(),
			"visual":          visual,
		},
		Required: []string{"id", "chapterTitle", "paragraphs", "highlightPhrase", "visual"},
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"meta": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"title":    str(),
					"author":   str(),
					"essence":  str(),
					"language": str(),
				},
				Required: []string{"title", "author", "essence", "language"},
			},
			"screenplay": {Type: TypeArray, Items: scene},
		},
		Required: []string{"meta", "screenplay"},
	}
}

// TitleCheckSchema wraps a document in the known/analysis answer
func TitleCheckSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"known":    {Type: TypeBool},
			"analysis": DocumentSchema(),
		},
		Required: []string{"known"},
	}
}
