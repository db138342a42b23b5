package nav

// NavItem is one entry in the back-office navigation tree. Title doubles as
// the permission module name: a user without an AllowedRoles match still sees
// the item when they hold "<Title>_Read".
type NavItem struct {
	Title        string    `json:"title"`
	URL          string    `json:"url,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Badge        string    `json:"badge,omitempty"`
	AllowedRoles []string  `json:"-"`
	Children     []NavItem `json:"children,omitempty"`
}
