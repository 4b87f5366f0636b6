package seed

// File is the top-level structure of a seed file.
//
//	admins: [alice]
//	categories: [Design]
//	entries:
//	  - Design:
//	      - Figma:
//	          description: Collaborative interface design
//	          icon: figma.svg
//	          href: https://figma.com
//	          featured: true
type File struct {
	Admins     []string    `yaml:"admins,omitempty"`
	Categories []string    `yaml:"categories,omitempty"`
	Entries    EntryGroups `yaml:"entries,omitempty"`
}

// EntryGroups uses dynamic keys on two levels: the category, then the
// entry name. Order is kept because lists wrap each map.
type EntryGroups []map[string][]map[string]EntryProps

// EntryProps contains the entry fields besides its name and category
type EntryProps struct {
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Href        string `yaml:"href,omitempty"`
	Featured    bool   `yaml:"featured,omitempty"`
}
