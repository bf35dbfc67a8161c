package bookmarks

// Entry is the property block of one bookmark.
type Entry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// Group maps a group name to its bookmarks. Each bookmark name maps to a
// one-element list holding its properties:
//
//	- Developer:
//	    - GitHub:
//	        - abbr: gh
//	          href: https://github.com/
type Group map[string][]map[string][]Entry

// File is the root of bookmarks.yaml.
type File []Group
